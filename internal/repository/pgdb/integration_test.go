//go:build integration
// +build integration

package pgdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPool поднимает PostgreSQL в контейнере, накатывает миграции
// и возвращает пул. Контейнер останавливается по завершении теста.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	require.NoError(t, err)

	m, err := migrate.NewWithDatabaseInstance("file://../../../db/migrations", "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()

	repo := pgdb.NewUserRepo(pool, generated.NewUserConverterImpl())
	user, err := repo.Create(context.Background(), domain.NewUser("buyer", "hash"))
	require.NoError(t, err)

	return user.ID
}

func createTestProduct(t *testing.T, pool *pgxpool.Pool, name string, price, stock int64) *domain.Product {
	t.Helper()

	repo := pgdb.NewProductRepo(pool, generated.NewProductConverterImpl())
	product, err := repo.Create(context.Background(), domain.NewProduct(name, "", price, stock))
	require.NoError(t, err)

	return product
}

// createTestOrder пишет заказ через репозиторий в явной транзакции,
// как это делает usecase.
func createTestOrder(t *testing.T, pool *pgxpool.Pool, userID int64, items []domain.OrderItem) *domain.Order {
	t.Helper()
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)

	repo := pgdb.NewOrderRepo(pool)
	order, err := repo.Create(context.WithValue(ctx, "tx", tx), domain.NewOrder(uuid.NewString(), userID, domain.OrderStatusPending, items))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	return order
}

func TestProductDeleteCascadesOrderItems(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	userID := createTestUser(t, pool)
	laptop := createTestProduct(t, pool, "Laptop", 10000, 5)
	mouse := createTestProduct(t, pool, "Mouse", 5000, 10)

	order := createTestOrder(t, pool, userID, []domain.OrderItem{
		domain.NewOrderItem(laptop.ID, 2),
		domain.NewOrderItem(mouse.ID, 1),
	})
	require.Equal(t, int64(25000), order.TotalPrice())

	productRepo := pgdb.NewProductRepo(pool, generated.NewProductConverterImpl())
	_, err := productRepo.Delete(ctx, laptop.ID)
	require.NoError(t, err)

	// Заказ жив, позиция удаленного товара ушла каскадом, итог пересчитан.
	got, err := pgdb.NewOrderRepo(pool).GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, mouse.ID, got.Items[0].ProductID)
	assert.Equal(t, int64(5000), got.TotalPrice())
}

func TestOrderCreateUnknownProductReturnsReferenceError(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	userID := createTestUser(t, pool)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	orderID := uuid.NewString()
	repo := pgdb.NewOrderRepo(pool)
	_, err = repo.Create(context.WithValue(ctx, "tx", tx),
		domain.NewOrder(orderID, userID, domain.OrderStatusPending, []domain.OrderItem{
			domain.NewOrderItem(999999, 1),
		}))
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	require.NoError(t, tx.Rollback(ctx))
	_, err = repo.GetByID(ctx, orderID)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestProductListCountIgnoresPagination(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	createTestProduct(t, pool, "Laptop", 10000, 5)
	createTestProduct(t, pool, "Mouse", 5000, 10)
	createTestProduct(t, pool, "Keyboard", 7000, 0)

	repo := pgdb.NewProductRepo(pool, generated.NewProductConverterImpl())

	// Страница за пределами выборки: пусто, но count полный.
	products, count, err := repo.List(ctx, &usecase.ListProductsReq{Limit: 2, Offset: 1000})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int64(3), count)

	// Count учитывает фильтры, а не только пагинацию.
	products, count, err = repo.List(ctx, &usecase.ListProductsReq{InStockOnly: true, Limit: 1, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(2), count)
}

func TestOutboxBatchClaimReleasesConnection(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	repo := pgdb.NewOutboxEventRepo(pool, generated.NewOutboxEventConverterImpl())

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	txCtx := context.WithValue(ctx, "tx", tx)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(txCtx, &usecase.OutboxEvent{
			EventID:     uuid.NewString(),
			EventType:   usecase.OrderCreated,
			AggregateID: uuid.NewString(),
			Payload:     []byte(`{}`),
			Status:      usecase.Pending,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))

	events, err := repo.GetAndMarkAsProcessing(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Транзакция выборки завершена, соединение возвращено в пул,
	// блокировки строк сняты.
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())

	events, err = repo.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, repo.MarkAsProcessed(ctx, events[0].ID))

	events, err = repo.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
