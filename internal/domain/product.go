package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64 // Цена хранится в копейках
	Stock       int64
	ImageKey    *string // Ключ объекта в S3, nil если изображения нет
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(name string, description string, price int64, stock int64) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}
}

// InStock сообщает, есть ли товар в наличии.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
