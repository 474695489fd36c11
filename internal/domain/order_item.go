package domain

// OrderItem — позиция заказа: ссылка на товар и количество.
// ProductName и ProductPrice заполняются при чтении из текущего
// состояния каталога, цена на момент оформления не фиксируется.
type OrderItem struct {
	ID           int64
	OrderID      string
	ProductID    int64
	ProductName  string
	ProductPrice int64 // Текущая цена товара в копейках
	Quantity     int64
}

func NewOrderItem(productID int64, quantity int64) OrderItem {
	return OrderItem{
		ProductID: productID,
		Quantity:  quantity,
	}
}

// Subtotal возвращает подытог позиции: цена товара на количество.
func (i *OrderItem) Subtotal() int64 {
	return i.ProductPrice * i.Quantity
}
