package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	imagesInfra ImagesInfra
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

// ListProducts возвращает страницу каталога с фильтрами, поиском и сортировкой.
func (p *ProductUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "ProductUseCase.ListProducts"

	if err := validateListReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	products, count, err := p.productRepo.List(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{
		Products: NewArrProductRes(products),
		Count:    count,
	}, nil
}

// GetProduct возвращает товар по идентификатору, сначала заглядывая в кэш.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*ProductRes, error) {
	const op = "ProductUseCase.GetProduct"

	cached, err := p.cacheRepo.GetProducts(ctx, []int64{id})
	if err == nil {
		if product, ok := cached[id]; ok {
			return &product, nil
		}
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewProductRes(product)

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, []ProductRes{res}); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return &res, nil
}

// CreateProduct валидирует и создает товар каталога.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductRes, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := validateProduct(req.Name, req.Price, req.Stock); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.Create(ctx, domain.NewProduct(req.Name, req.Description, req.Price, req.Stock))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewProductRes(product)
	return &res, nil
}

// UpdateProduct валидирует и обновляет товар, инвалидируя кэш.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*ProductRes, error) {
	const op = "ProductUseCase.UpdateProduct"

	if err := validateProduct(req.Name, req.Price, req.Stock); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Description, req.Price, req.Stock)
	product.ID = req.ID

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, req.ID)

	res := NewProductRes(updated)
	return &res, nil
}

// DeleteProduct удаляет товар. Ссылающиеся позиции заказов удаляются
// каскадом, изображение товара зачищается асинхронно.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	imageKey, err := p.productRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if imageKey != nil {
		p.imagesInfra.CleanupImages([]string{*imageKey})
	}

	p.invalidateCache(ctx, id)

	return nil
}

// GetSummary возвращает сводку каталога: товары, количество, максимальная цена.
func (p *ProductUseCase) GetSummary(ctx context.Context) (*ProductSummaryRes, error) {
	const op = "ProductUseCase.GetSummary"

	products, maxPrice, err := p.productRepo.Summary(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ProductSummaryRes{
		Products: NewArrProductRes(products),
		Count:    int64(len(products)),
		MaxPrice: maxPrice,
	}, nil
}

// AttachImage загружает изображение в S3 и привязывает его к товару.
// Прежнее изображение и объект, оставшийся после неудачной привязки,
// зачищаются асинхронно.
func (p *ProductUseCase) AttachImage(ctx context.Context, req *AttachImageReq) (*ProductRes, error) {
	const op = "ProductUseCase.AttachImage"

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	key, err := p.imagesInfra.UploadImage(ctx, NewUploadImageReq(product.Name, req.Image))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	oldKey, err := p.productRepo.SetImageKey(ctx, req.ProductID, key)
	if err != nil {
		p.logger.Warnf("Cleaning up orphaned image after failed attach. product_id: %d, error: %v",
			req.ProductID, e.Wrap(op, err))
		p.imagesInfra.CleanupImages([]string{key})
		return nil, e.Wrap(op, err)
	}

	if oldKey != nil && *oldKey != key {
		p.imagesInfra.CleanupImages([]string{*oldKey})
	}

	p.invalidateCache(ctx, req.ProductID)

	product.ImageKey = &key
	res := NewProductRes(product)
	return &res, nil
}

// invalidateCache удаляет товар из кэша, ошибки только логируются.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id int64) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
}

// validateProduct проверяет доменные инварианты товара перед записью.
func validateProduct(name string, price int64, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrProductNameRequired
	}

	if price <= 0 {
		return e.ErrPriceMustBePositive
	}

	if stock < 0 {
		return e.ErrStockMustBeNonNeg
	}

	return nil
}

// validateListReq нормализует параметры листинга.
func validateListReq(req *ListProductsReq) error {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	switch req.OrderBy {
	case "", "name", "price", "stock":
	default:
		return e.ErrStatusBadRequest
	}

	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	return nil
}
