package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// postgresDuplicate распознает нарушение уникального ограничения.
func postgresDuplicate(err error) bool {
	return pgErrCode(err) == codeUniqueViolation
}

// postgresForeignKeyViolation распознает нарушение внешнего ключа,
// например ссылку на несуществующий товар в позиции заказа.
func postgresForeignKeyViolation(err error) bool {
	return pgErrCode(err) == codeForeignKeyViolation
}
