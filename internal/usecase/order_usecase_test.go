package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderUC(repo *fakeOrderRepo) *OrderUseCase {
	return NewOrderUC(repo, nil, nil, nopLogger{})
}

func TestCreateOrderValidation(t *testing.T) {
	uc := newOrderUC(&fakeOrderRepo{})
	actor := Identity{UserID: 7}

	tests := []struct {
		name    string
		req     *CreateOrderReq
		wantErr error
	}{
		{"no items", &CreateOrderReq{Items: nil}, e.ErrNoOrderItems},
		{"empty items", &CreateOrderReq{Items: []OrderItemReq{}}, e.ErrNoOrderItems},
		{"zero quantity", &CreateOrderReq{Items: []OrderItemReq{{ProductID: 1, Quantity: 0}}}, e.ErrQuantityMustBePos},
		{"negative quantity", &CreateOrderReq{Items: []OrderItemReq{{ProductID: 1, Quantity: -2}}}, e.ErrQuantityMustBePos},
		{"unknown status", &CreateOrderReq{Status: "Shipped", Items: []OrderItemReq{{ProductID: 1, Quantity: 1}}}, e.ErrInvalidOrderStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateOrder(context.Background(), actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetOrderOwner(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: 7, Status: domain.OrderStatusPending}, nil
		},
	}
	uc := newOrderUC(repo)

	res, err := uc.GetOrder(context.Background(), Identity{UserID: 7}, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.UserID)
}

func TestGetOrderForeignLooksMissing(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: 7}, nil
		},
	}
	uc := newOrderUC(repo)

	// Чужой заказ неотличим от несуществующего
	_, err := uc.GetOrder(context.Background(), Identity{UserID: 8}, "o1")
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestGetOrderAdminSeesForeign(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: 7}, nil
		},
	}
	uc := newOrderUC(repo)

	res, err := uc.GetOrder(context.Background(), Identity{UserID: 1, IsAdmin: true}, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.UserID)
}

func TestListOrdersScopesCustomerToOwn(t *testing.T) {
	var gotUserID *int64
	repo := &fakeOrderRepo{
		listFn: func(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error) {
			gotUserID = userID
			return nil, nil
		},
	}
	uc := newOrderUC(repo)

	_, err := uc.ListOrders(context.Background(), Identity{UserID: 7}, &ListOrdersReq{})
	require.NoError(t, err)
	require.NotNil(t, gotUserID)
	assert.Equal(t, int64(7), *gotUserID)
}

func TestListOrdersAdminSeesAll(t *testing.T) {
	var gotUserID *int64
	repo := &fakeOrderRepo{
		listFn: func(ctx context.Context, userID *int64, status *domain.OrderStatus) ([]domain.Order, error) {
			gotUserID = userID
			return []domain.Order{{ID: "o1", UserID: 7}, {ID: "o2", UserID: 8}}, nil
		},
	}
	uc := newOrderUC(repo)

	res, err := uc.ListOrders(context.Background(), Identity{UserID: 1, IsAdmin: true}, &ListOrdersReq{})
	require.NoError(t, err)
	assert.Nil(t, gotUserID)
	assert.Len(t, res, 2)
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	uc := newOrderUC(&fakeOrderRepo{})

	bad := domain.OrderStatus("Shipped")
	_, err := uc.ListOrders(context.Background(), Identity{UserID: 7}, &ListOrdersReq{Status: &bad})
	assert.ErrorIs(t, err, e.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	uc := newOrderUC(&fakeOrderRepo{})

	// Пустой статус недопустим при обновлении
	_, err := uc.UpdateOrderStatus(context.Background(), Identity{UserID: 7}, &UpdateOrderReq{ID: "o1", Status: ""})
	assert.ErrorIs(t, err, e.ErrInvalidOrderStatus)

	_, err = uc.UpdateOrderStatus(context.Background(), Identity{UserID: 7}, &UpdateOrderReq{ID: "o1", Status: "Shipped"})
	assert.ErrorIs(t, err, e.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatusForeignLooksMissing(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: 7}, nil
		},
	}
	uc := newOrderUC(repo)

	_, err := uc.UpdateOrderStatus(context.Background(), Identity{UserID: 8}, &UpdateOrderReq{ID: "o1", Status: "Confirmed"})
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestDeleteOrderForeignLooksMissing(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: 7}, nil
		},
	}
	uc := newOrderUC(repo)

	err := uc.DeleteOrder(context.Background(), Identity{UserID: 8}, "o1")
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestParseStatusDefault(t *testing.T) {
	status, err := parseStatus("", domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, status)
}
