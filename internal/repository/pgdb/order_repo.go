package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Позиции заказа читаются с join на products: имя и цена товара
// всегда текущие, подытог считается по ним.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderItemsQuery = `
	SELECT oi.id, oi.order_id, oi.product_id, p.name, p.price, oi.quantity
	FROM order_items oi
	JOIN products p ON oi.product_id = p.id
	WHERE oi.order_id = ANY($1)
	ORDER BY oi.id;
`

// Create пишет шапку и позиции заказа в транзакции из контекста.
// Ссылка на несуществующий товар дает e.ErrProductNotFound,
// и вся транзакция откатывается вызывающим.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	headerQuery := `
		INSERT INTO orders (id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING created_at;
	`

	if err := tx.QueryRow(ctx, headerQuery, order.ID, order.UserID, order.Status).
		Scan(&order.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3);
	`

	for i := range order.Items {
		item := &order.Items[i]
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.ProductID, item.Quantity); err != nil {
			if postgresForeignKeyViolation(err) {
				return nil, e.ErrProductNotFound
			}
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	// Перечитываем позиции с текущими данными товаров внутри транзакции
	items, err := o.queryItems(ctx, tx, []string{order.ID})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	order.Items = items[order.ID]

	return order, nil
}

func (o *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT id, user_id, status, created_at FROM orders WHERE id = $1;`

	var order domain.Order
	if err := o.pool.QueryRow(ctx, query, id).
		Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrOrderNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.queryItems(ctx, o.pool, []string{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	order.Items = items[id]

	return &order, nil
}

// List возвращает заказы с позициями. userID nil — все заказы,
// иначе только заказы указанного владельца.
func (o *OrderRepo) List(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, status, created_at
		FROM orders
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC;
	`

	rows, err := o.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []string
	)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := o.queryItems(ctx, o.pool, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// UpdateStatus меняет статус заказа в транзакции из контекста.
func (o *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE orders SET status = $2 WHERE id = $1;`

	result, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrOrderNotFound
	}

	return nil
}

// Delete удаляет заказ в транзакции из контекста, позиции уходят каскадом.
func (o *OrderRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrOrderNotFound
	}

	return nil
}

// querier покрывает pgxpool.Pool и pgx.Tx для чтения позиций.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryItems читает позиции заказов одним запросом и группирует их по заказу.
func (o *OrderRepo) queryItems(ctx context.Context, q querier, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := q.Query(ctx, orderItemsQuery, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.ProductPrice, &item.Quantity,
		); err != nil {
			return nil, err
		}

		result[item.OrderID] = append(result[item.OrderID], item)
	}

	return result, rows.Err()
}
