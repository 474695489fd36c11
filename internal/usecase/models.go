package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// Identity — аутентифицированный вызывающий. Нулевой UserID означает
// анонимный запрос.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// PRODUCT USECASE

// CreateProductReq — запрос на создание товара каталога.
type CreateProductReq struct {
	Name        string
	Description string
	Price       int64 // в копейках
	Stock       int64
}

// UpdateProductReq — запрос на обновление товара каталога.
type UpdateProductReq struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Stock       int64
}

// ListProductsReq — параметры фильтрации, поиска, сортировки и
// пагинации списка товаров.
type ListProductsReq struct {
	NameContains string
	PriceMin     *int64
	PriceMax     *int64
	InStockOnly  bool
	Search       string // подстрока по имени и описанию
	OrderBy      string // name | price | stock
	Desc         bool
	Limit        int
	Offset       int
}

// ProductRes — DTO товара для внешнего использования.
type ProductRes struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Stock       int64
	InStock     bool
	ImageKey    *string
	CreatedAt   time.Time
}

// ListProductsRes — страница товаров и общее количество без учета пагинации.
type ListProductsRes struct {
	Products []ProductRes
	Count    int64
}

// ProductSummaryRes — агрегированная сводка каталога.
// MaxPrice равен nil для пустого каталога.
type ProductSummaryRes struct {
	Products []ProductRes
	Count    int64
	MaxPrice *int64
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// AttachImageReq — запрос на привязку изображения к товару.
type AttachImageReq struct {
	ProductID int64
	Image     ProductImage
}

// ORDER USECASE

// OrderItemReq — позиция в запросе на создание заказа.
type OrderItemReq struct {
	ProductID int64
	Quantity  int64
}

// CreateOrderReq — запрос на создание заказа.
// Владелец заказа берется из Identity вызывающего и никогда из запроса.
type CreateOrderReq struct {
	Status string // пустая строка — статус по умолчанию Pending
	Items  []OrderItemReq
}

// UpdateOrderReq — запрос на смену статуса заказа.
type UpdateOrderReq struct {
	ID     string
	Status string
}

// ListOrdersReq — параметры выборки заказов.
type ListOrdersReq struct {
	Status *domain.OrderStatus
}

// OrderItemRes — DTO позиции заказа с вычисленным подытогом.
type OrderItemRes struct {
	ProductID    int64
	ProductName  string
	ProductPrice int64
	Quantity     int64
	Subtotal     int64
}

// OrderRes — DTO заказа с вычисленной общей стоимостью.
type OrderRes struct {
	ID         string
	UserID     int64
	Status     domain.OrderStatus
	CreatedAt  time.Time
	Items      []OrderItemRes
	TotalPrice int64
}

// AUTH USECASE

type RegisterReq struct {
	Username string
	Password string
}

type LoginReq struct {
	Username string
	Password string
}

// AuthRes — выданный токен и данные учетной записи.
type AuthRes struct {
	Token   string
	UserID  int64
	IsAdmin bool
}

// INFRASTRUCTURE

// UploadImageReq — запрос на загрузку изображения товара в S3.
type UploadImageReq struct {
	ProductName string
	Image       ProductImage
}

// WriteRawMessageReq — готовый к отправке в Kafka payload события заказа.
type WriteRawMessageReq struct {
	AggregateID string // id заказа, используется как ключ партиционирования
	Payload     []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreated       OutboxEventType = "order.created"
	OrderStatusChanged OutboxEventType = "order.status_changed"
	OrderDeleted       OutboxEventType = "order.deleted"
)

// OutboxEvent — запись транзакционного outbox для событий заказов.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	AggregateID string // id заказа
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewProductRes(p *domain.Product) ProductRes {
	return ProductRes{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		ImageKey:    p.ImageKey,
		CreatedAt:   p.CreatedAt,
	}
}

func NewArrProductRes(products []domain.Product) []ProductRes {
	res := make([]ProductRes, 0, len(products))
	for i := range products {
		res = append(res, NewProductRes(&products[i]))
	}

	return res
}

func NewOrderItemRes(item *domain.OrderItem) OrderItemRes {
	return OrderItemRes{
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductPrice: item.ProductPrice,
		Quantity:     item.Quantity,
		Subtotal:     item.Subtotal(),
	}
}

func NewOrderRes(order *domain.Order) *OrderRes {
	items := make([]OrderItemRes, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, NewOrderItemRes(&order.Items[i]))
	}

	return &OrderRes{
		ID:         order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		Items:      items,
		TotalPrice: order.TotalPrice(),
	}
}

func NewArrOrderRes(orders []domain.Order) []*OrderRes {
	res := make([]*OrderRes, 0, len(orders))
	for i := range orders {
		res = append(res, NewOrderRes(&orders[i]))
	}

	return res
}

func NewWriteRawMessageReq(aggregateID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		AggregateID: aggregateID,
		Payload:     payload,
	}
}

func NewUploadImageReq(productName string, image ProductImage) *UploadImageReq {
	return &UploadImageReq{
		ProductName: productName,
		Image:       image,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}
