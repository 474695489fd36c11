package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = "id, name, description, price, stock, image_key, created_at, updated_at"

// orderByColumns — белый список ключей сортировки листинга.
var orderByColumns = map[string]string{
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns + `;
	`

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.Stock))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns + `;
	`

	model, err := p.scanProduct(p.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет товар и возвращает ключ его изображения.
// Позиции заказов удаляются каскадом по внешнему ключу.
func (p *ProductRepo) Delete(ctx context.Context, id int64) (*string, error) {
	query := `DELETE FROM products WHERE id = $1 RETURNING image_key;`

	var imageKey *string
	if err := p.pool.QueryRow(ctx, query, id).Scan(&imageKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return imageKey, nil
}

// List возвращает страницу товаров и общее число строк до пагинации.
// Count считается отдельным запросом с теми же условиями, чтобы страница
// за пределами выборки (большой offset) все равно вернула полный count.
func (p *ProductRepo) List(ctx context.Context, req *usecase.ListProductsReq) ([]domain.Product, int64, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString("SELECT " + productColumns + " FROM products")

	var conds []string
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.NameContains != "" {
		conds = append(conds, "name ILIKE "+addArg("%"+req.NameContains+"%"))
	}
	if req.PriceMin != nil {
		conds = append(conds, "price >= "+addArg(*req.PriceMin))
	}
	if req.PriceMax != nil {
		conds = append(conds, "price <= "+addArg(*req.PriceMax))
	}
	if req.InStockOnly {
		conds = append(conds, "stock > 0")
	}
	if req.Search != "" {
		ph := addArg("%" + req.Search + "%")
		conds = append(conds, "(name ILIKE "+ph+" OR description ILIKE "+ph+")")
	}

	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
		sb.WriteString(where)
	}
	filterArgs := args

	// Сортировка только по колонкам из белого списка, id — для стабильности.
	if col, ok := orderByColumns[req.OrderBy]; ok {
		sb.WriteString(" ORDER BY " + col)
		if req.Desc {
			sb.WriteString(" DESC")
		}
		sb.WriteString(", id")
	} else {
		sb.WriteString(" ORDER BY id")
	}

	sb.WriteString(" LIMIT " + addArg(req.Limit))
	sb.WriteString(" OFFSET " + addArg(req.Offset))

	rows, err := p.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock,
			&model.ImageKey, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var count int64
	countQuery := "SELECT COUNT(*) FROM products" + where + ";"
	if err := p.pool.QueryRow(ctx, countQuery, filterArgs...).Scan(&count); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, count, nil
}

// Summary возвращает весь каталог и максимальную цену одним запросом.
func (p *ProductRepo) Summary(ctx context.Context) ([]domain.Product, *int64, error) {
	query := `
		SELECT ` + productColumns + `, MAX(price) OVER () AS max_price
		FROM products
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var (
		products []domain.Product
		maxPrice *int64
	)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock,
			&model.ImageKey, &model.CreatedAt, &model.UpdatedAt, &maxPrice,
		); err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, maxPrice, nil
}

// SetImageKey привязывает ключ изображения и возвращает прежний ключ.
func (p *ProductRepo) SetImageKey(ctx context.Context, id int64, key string) (*string, error) {
	query := `
		WITH old AS (
			SELECT image_key FROM products WHERE id = $1
		)
		UPDATE products
		SET image_key = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING (SELECT image_key FROM old);
	`

	var oldKey *string
	if err := p.pool.QueryRow(ctx, query, id, key).Scan(&oldKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return oldKey, nil
}

func (p *ProductRepo) scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock,
		&model.ImageKey, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
