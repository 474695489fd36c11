package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUC(repo *fakeProductRepo, cache *fakeCacheRepo, images *fakeImagesInfra) *ProductUseCase {
	if cache == nil {
		cache = newFakeCacheRepo()
	}
	if images == nil {
		images = &fakeImagesInfra{}
	}
	return NewProductUC(repo, cache, images, nopLogger{})
}

func TestCreateProductValidation(t *testing.T) {
	uc := newProductUC(&fakeProductRepo{}, nil, nil)

	tests := []struct {
		name    string
		req     *CreateProductReq
		wantErr error
	}{
		{"empty name", &CreateProductReq{Name: "", Price: 100, Stock: 1}, e.ErrProductNameRequired},
		{"whitespace name", &CreateProductReq{Name: "   ", Price: 100, Stock: 1}, e.ErrProductNameRequired},
		{"zero price", &CreateProductReq{Name: "Widget", Price: 0, Stock: 1}, e.ErrPriceMustBePositive},
		{"negative price", &CreateProductReq{Name: "Widget", Price: -500, Stock: 1}, e.ErrPriceMustBePositive},
		{"negative stock", &CreateProductReq{Name: "Widget", Price: 100, Stock: -1}, e.ErrStockMustBeNonNeg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateProductMinimalPrice(t *testing.T) {
	repo := &fakeProductRepo{
		createFn: func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
			product.ID = 1
			return product, nil
		},
	}
	uc := newProductUC(repo, nil, nil)

	// Одна копейка — минимально допустимая цена
	res, err := uc.CreateProduct(context.Background(), &CreateProductReq{Name: "Widget", Price: 1, Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Price)
	assert.False(t, res.InStock)
}

func TestGetProductCacheMiss(t *testing.T) {
	repo := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Widget", Price: 9900, Stock: 3}, nil
		},
	}
	cache := newFakeCacheRepo()
	uc := newProductUC(repo, cache, nil)

	res, err := uc.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Widget", res.Name)
	assert.True(t, res.InStock)

	// Товар докладывается в кэш в фоне
	select {
	case cached := <-cache.setCh:
		require.Len(t, cached, 1)
		assert.Equal(t, int64(42), cached[0].ID)
	case <-time.After(time.Second):
		t.Fatal("expected background cache write")
	}
}

func TestGetProductCacheHit(t *testing.T) {
	repo := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			t.Fatal("repository must not be hit on cache hit")
			return nil, nil
		},
	}
	cache := newFakeCacheRepo()
	cache.products[42] = ProductRes{ID: 42, Name: "Cached", Price: 100}
	uc := newProductUC(repo, cache, nil)

	res, err := uc.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Cached", res.Name)
}

func TestGetProductNotFound(t *testing.T) {
	repo := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, e.ErrProductNotFound
		},
	}
	uc := newProductUC(repo, nil, nil)

	_, err := uc.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	repo := &fakeProductRepo{
		updateFn: func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
			return product, nil
		},
	}
	cache := newFakeCacheRepo()
	uc := newProductUC(repo, cache, nil)

	_, err := uc.UpdateProduct(context.Background(), &UpdateProductReq{ID: 5, Name: "Widget", Price: 100, Stock: 1})
	require.NoError(t, err)
	require.Len(t, cache.deleted, 1)
	assert.Equal(t, []int64{5}, cache.deleted[0])
}

func TestDeleteProductCleansUpImage(t *testing.T) {
	key := "products/widget.jpg"
	repo := &fakeProductRepo{
		deleteFn: func(ctx context.Context, id int64) (*string, error) {
			return &key, nil
		},
	}
	images := &fakeImagesInfra{}
	uc := newProductUC(repo, nil, images)

	require.NoError(t, uc.DeleteProduct(context.Background(), 5))
	require.Len(t, images.cleaned, 1)
	assert.Equal(t, []string{key}, images.cleaned[0])
}

func TestGetSummary(t *testing.T) {
	maxPrice := int64(50000)
	repo := &fakeProductRepo{
		summaryFn: func(ctx context.Context) ([]domain.Product, *int64, error) {
			return []domain.Product{
				{ID: 1, Name: "A", Price: 10000, Stock: 1},
				{ID: 2, Name: "B", Price: 50000, Stock: 0},
			}, &maxPrice, nil
		},
	}
	uc := newProductUC(repo, nil, nil)

	res, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)
	require.NotNil(t, res.MaxPrice)
	assert.Equal(t, int64(50000), *res.MaxPrice)
}

func TestGetSummaryEmptyCatalog(t *testing.T) {
	repo := &fakeProductRepo{
		summaryFn: func(ctx context.Context) ([]domain.Product, *int64, error) {
			return nil, nil, nil
		},
	}
	uc := newProductUC(repo, nil, nil)

	res, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Count)
	assert.Nil(t, res.MaxPrice)
}

func TestListProductsRejectsUnknownOrderBy(t *testing.T) {
	uc := newProductUC(&fakeProductRepo{}, nil, nil)

	_, err := uc.ListProducts(context.Background(), &ListProductsReq{OrderBy: "password_hash"})
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)
}

func TestListProductsDefaultsPagination(t *testing.T) {
	var got *ListProductsReq
	repo := &fakeProductRepo{
		listFn: func(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error) {
			got = req
			return nil, 0, nil
		},
	}
	uc := newProductUC(repo, nil, nil)

	_, err := uc.ListProducts(context.Background(), &ListProductsReq{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 50, got.Limit)
	assert.Equal(t, 0, got.Offset)

	_, err = uc.ListProducts(context.Background(), &ListProductsReq{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 200, got.Limit)
}

func TestAttachImageCleansUpOrphanOnFailure(t *testing.T) {
	repo := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Widget", Price: 100, Stock: 1}, nil
		},
		setImageKeyFn: func(ctx context.Context, id int64, key string) (*string, error) {
			return nil, e.ErrProductNotFound
		},
	}
	images := &fakeImagesInfra{}
	uc := newProductUC(repo, nil, images)

	_, err := uc.AttachImage(context.Background(), &AttachImageReq{ProductID: 5, Image: ProductImage{Name: "a.jpg"}})
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	require.Len(t, images.cleaned, 1)
	assert.Equal(t, []string{"products/key"}, images.cleaned[0])
}

func TestAttachImageReplacesOldKey(t *testing.T) {
	oldKey := "products/old.jpg"
	repo := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Widget", Price: 100, Stock: 1, ImageKey: &oldKey}, nil
		},
		setImageKeyFn: func(ctx context.Context, id int64, key string) (*string, error) {
			return &oldKey, nil
		},
	}
	images := &fakeImagesInfra{}
	uc := newProductUC(repo, nil, images)

	res, err := uc.AttachImage(context.Background(), &AttachImageReq{ProductID: 5, Image: ProductImage{Name: "a.jpg"}})
	require.NoError(t, err)
	require.NotNil(t, res.ImageKey)
	assert.Equal(t, "products/key", *res.ImageKey)
	require.Len(t, images.cleaned, 1)
	assert.Equal(t, []string{oldKey}, images.cleaned[0])
}
