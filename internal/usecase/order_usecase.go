package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderUseCase реализует бизнес-логику заказов.
type OrderUseCase struct {
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// orderEventPayload — схема JSON-события заказа для outbox.
type orderEventPayload struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OrderID    string `json:"order_id"`
	UserID     int64  `json:"user_id"`
	Status     string `json:"status"`
	TotalPrice int64  `json:"total_price"`
	OccurredAt int64  `json:"occurred_at"`
}

// CreateOrder создает заказ от имени вызывающего.
// Владелец всегда берется из Identity. Шапка, позиции и событие outbox
// пишутся в одной транзакции: заказ без позиций не может сохраниться.
func (o *OrderUseCase) CreateOrder(ctx context.Context, actor Identity, req *CreateOrderReq) (*OrderRes, error) {
	const op = "OrderUseCase.CreateOrder"

	var err error
	status, err := parseStatus(req.Status, domain.OrderStatusPending)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items, err := validateItems(req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	order := domain.NewOrder(uuid.NewString(), actor.UserID, status, items)

	created, err := o.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.createOutboxEvent(ctx, OrderCreated, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewOrderRes(created), nil
}

// GetOrder возвращает заказ по идентификатору с учетом политики доступа.
// Чужой заказ для не-администратора неотличим от несуществующего.
func (o *OrderUseCase) GetOrder(ctx context.Context, actor Identity, id string) (*OrderRes, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !Allowed(OpOrderRead, actor.Role(), actor.Owns(order)) {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	return NewOrderRes(order), nil
}

// ListOrders возвращает заказы, видимые вызывающему:
// администратору — все, покупателю — только собственные.
func (o *OrderUseCase) ListOrders(ctx context.Context, actor Identity, req *ListOrdersReq) ([]*OrderRes, error) {
	const op = "OrderUseCase.ListOrders"

	if req.Status != nil && !req.Status.IsValid() {
		return nil, e.Wrap(op, e.ErrInvalidOrderStatus)
	}

	var scope *int64
	if actor.Role() != RoleAdmin {
		userID := actor.UserID
		scope = &userID
	}

	orders, err := o.orderRepo.List(ctx, scope, req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewArrOrderRes(orders), nil
}

// UpdateOrderStatus меняет статус заказа и пишет событие в outbox
// в той же транзакции.
func (o *OrderUseCase) UpdateOrderStatus(ctx context.Context, actor Identity, req *UpdateOrderReq) (*OrderRes, error) {
	const op = "OrderUseCase.UpdateOrderStatus"

	status, err := parseStatus(req.Status, "")
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order, err := o.orderRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !Allowed(OpOrderWrite, actor.Role(), actor.Owns(order)) {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = o.orderRepo.UpdateStatus(ctx, req.ID, status); err != nil {
		return nil, e.Wrap(op, err)
	}

	order.Status = status
	if err = o.createOutboxEvent(ctx, OrderStatusChanged, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewOrderRes(order), nil
}

// DeleteOrder удаляет заказ вместе с позициями (каскад на уровне схемы)
// и пишет событие удаления в той же транзакции.
func (o *OrderUseCase) DeleteOrder(ctx context.Context, actor Identity, id string) error {
	const op = "OrderUseCase.DeleteOrder"

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if !Allowed(OpOrderWrite, actor.Role(), actor.Owns(order)) {
		return e.Wrap(op, e.ErrOrderNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = o.orderRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = o.createOutboxEvent(ctx, OrderDeleted, order); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// createOutboxEvent сериализует событие заказа и кладет его в outbox
// в рамках текущей транзакции.
func (o *OrderUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(orderEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice(),
		OccurredAt: time.Now().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: order.ID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now(),
	})

	return err
}

// parseStatus разбирает статус из запроса. Пустая строка дает значение
// по умолчанию, если оно задано.
func parseStatus(raw string, fallback domain.OrderStatus) (domain.OrderStatus, error) {
	if raw == "" {
		if fallback == "" {
			return "", e.ErrInvalidOrderStatus
		}
		return fallback, nil
	}

	status := domain.OrderStatus(raw)
	if !status.IsValid() {
		return "", e.ErrInvalidOrderStatus
	}

	return status, nil
}

// validateItems проверяет позиции заказа: список непуст, количество
// каждой позиции строго положительно.
func validateItems(items []OrderItemReq) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, e.ErrNoOrderItems
	}

	result := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, e.ErrQuantityMustBePos
		}
		result = append(result, domain.NewOrderItem(item.ProductID, item.Quantity))
	}

	return result, nil
}
