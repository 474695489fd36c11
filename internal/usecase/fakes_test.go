package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// nopLogger — логгер-заглушка для тестов.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeProductRepo реализует ProductRepository поверх функций-полей.
type fakeProductRepo struct {
	createFn      func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	getByIDFn     func(ctx context.Context, id int64) (*domain.Product, error)
	updateFn      func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	deleteFn      func(ctx context.Context, id int64) (*string, error)
	listFn        func(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error)
	summaryFn     func(ctx context.Context) ([]domain.Product, *int64, error)
	setImageKeyFn func(ctx context.Context, id int64, key string) (*string, error)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return f.createFn(ctx, product)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return f.updateFn(ctx, product)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) (*string, error) {
	return f.deleteFn(ctx, id)
}

func (f *fakeProductRepo) List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error) {
	return f.listFn(ctx, req)
}

func (f *fakeProductRepo) Summary(ctx context.Context) ([]domain.Product, *int64, error) {
	return f.summaryFn(ctx)
}

func (f *fakeProductRepo) SetImageKey(ctx context.Context, id int64, key string) (*string, error) {
	return f.setImageKeyFn(ctx, id, key)
}

// fakeCacheRepo — кэш-заглушка. setCh сигнализирует о фоновой записи.
type fakeCacheRepo struct {
	products map[int64]ProductRes
	setCh    chan []ProductRes
	deleted  [][]int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{
		products: make(map[int64]ProductRes),
		setCh:    make(chan []ProductRes, 8),
	}
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductRes, error) {
	result := make(map[int64]ProductRes)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []ProductRes) error {
	f.setCh <- products
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	f.deleted = append(f.deleted, ids)
	return nil
}

// fakeImagesInfra запоминает загрузки и удаления.
type fakeImagesInfra struct {
	uploadFn func(ctx context.Context, req *UploadImageReq) (string, error)
	cleaned  [][]string
}

func (f *fakeImagesInfra) UploadImage(ctx context.Context, req *UploadImageReq) (string, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, req)
	}
	return "products/key", nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys)
}

func (f *fakeImagesInfra) WaitForCleanup(ctx context.Context) error { return nil }

// fakeOrderRepo реализует OrderRepository поверх функций-полей.
type fakeOrderRepo struct {
	createFn       func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Order, error)
	listFn         func(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error)
	updateStatusFn func(ctx context.Context, id string, status domain.OrderStatus) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return f.createFn(ctx, order)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeOrderRepo) List(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error) {
	return f.listFn(ctx, userID, status)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

// fakeUserRepo хранит пользователей в памяти.
type fakeUserRepo struct {
	createFn        func(ctx context.Context, user *domain.User) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.getByIDFn(ctx, id)
}
