package usecase

import "context"

type ProductUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProduct(ctx context.Context, id int64) (*ProductRes, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductRes, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*ProductRes, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetSummary(ctx context.Context) (*ProductSummaryRes, error)
	AttachImage(ctx context.Context, req *AttachImageReq) (*ProductRes, error)
}

type OrderUC interface {
	CreateOrder(ctx context.Context, actor Identity, req *CreateOrderReq) (*OrderRes, error)
	GetOrder(ctx context.Context, actor Identity, id string) (*OrderRes, error)
	ListOrders(ctx context.Context, actor Identity, req *ListOrdersReq) ([]*OrderRes, error)
	UpdateOrderStatus(ctx context.Context, actor Identity, req *UpdateOrderReq) (*OrderRes, error)
	DeleteOrder(ctx context.Context, actor Identity, id string) error
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*AuthRes, error)
	Login(ctx context.Context, req *LoginReq) (*AuthRes, error)
	ParseToken(ctx context.Context, token string) (Identity, error)
}
