package domain

import "time"

// OrderStatus — статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid проверяет, что статус принадлежит перечислению.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// Order описывает заказ пользователя: шапка плюс позиции.
// Позиции принадлежат заказу и удаляются вместе с ним.
type Order struct {
	ID        string // uuid
	UserID    int64
	Status    OrderStatus
	CreatedAt time.Time
	Items     []OrderItem
}

func NewOrder(id string, userID int64, status OrderStatus, items []OrderItem) *Order {
	return &Order{
		ID:     id,
		UserID: userID,
		Status: status,
		Items:  items,
	}
}

// TotalPrice возвращает сумму подытогов всех позиций в копейках.
// Значение нигде не хранится и всегда вычисляется заново;
// для заказа без позиций возвращается 0.
func (o *Order) TotalPrice() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].Subtotal()
	}
	return total
}
