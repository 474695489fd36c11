package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Delete удаляет товар и возвращает ключ его изображения, если он был.
	// Позиции заказов, ссылающиеся на товар, удаляются каскадом на уровне схемы.
	Delete(ctx context.Context, id int64) (*string, error)
	List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error)
	// Summary возвращает весь каталог и максимальную цену (nil, если каталог пуст).
	Summary(ctx context.Context) ([]domain.Product, *int64, error)
	// SetImageKey привязывает ключ изображения и возвращает прежний ключ.
	SetImageKey(ctx context.Context, id int64, key string) (*string, error)
}

type OrderRepository interface {
	// Create пишет шапку и позиции заказа в транзакции из контекста
	// и возвращает заказ с позициями, обогащенными текущими данными товаров.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List возвращает заказы с позициями; userID nil — без фильтра по владельцу.
	List(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductRes, error)
	SetProducts(ctx context.Context, products []ProductRes) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
