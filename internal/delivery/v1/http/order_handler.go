package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// createOrderRequest — тело запроса на создание заказа.
// Владелец не принимается из тела: заказ всегда создается от имени
// аутентифицированного пользователя.
type createOrderRequest struct {
	Status string             `json:"status,omitempty"`
	Items  []orderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
	Quantity     int64  `json:"quantity"`
	Subtotal     string `json:"subtotal"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	UserID     int64               `json:"user_id"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []orderItemResponse `json:"items"`
	TotalPrice string              `json:"total_price"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

func newOrderResponse(res *usecase.OrderRes) orderResponse {
	items := make([]orderItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, orderItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: formatCents(item.ProductPrice),
			Quantity:     item.Quantity,
			Subtotal:     formatCents(item.Subtotal),
		})
	}

	return orderResponse{
		ID:         res.ID,
		UserID:     res.UserID,
		Status:     string(res.Status),
		CreatedAt:  res.CreatedAt,
		Items:      items,
		TotalPrice: formatCents(res.TotalPrice),
	}
}

// createOrder
//
//	@Summary		Создание заказа
//	@Description	Создает заказ от имени аутентифицированного пользователя
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createOrderRequest	true	"Позиции заказа"
//	@Success		201		{object}	orderResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401		{object}	ErrorResponse	"Требуется аутентификация"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	items := make([]usecase.OrderItemReq, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemReq{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	res, err := o.orderUsecase.CreateOrder(r.Context(), identityFromCtx(r.Context()), &usecase.CreateOrderReq{
		Status: req.Status,
		Items:  items,
	})
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(res))
}

// listOrders
//
//	@Summary		Список заказов
//	@Description	Покупатель видит свои заказы, администратор — все
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"Фильтр по статусу: Pending | Confirmed | Cancelled"
//	@Success		200		{object}	orderListResponse
//	@Failure		401		{object}	ErrorResponse	"Требуется аутентификация"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (o *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	var req usecase.ListOrdersReq
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.OrderStatus(s)
		if !status.IsValid() {
			WriteError(w, e.ErrInvalidOrderStatus)
			return
		}
		req.Status = &status
	}

	res, err := o.orderUsecase.ListOrders(r.Context(), identityFromCtx(r.Context()), &req)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	orders := make([]orderResponse, 0, len(res))
	for _, order := range res {
		orders = append(orders, newOrderResponse(order))
	}

	WriteSuccess(w, http.StatusOK, &orderListResponse{Orders: orders})
}

// getOrder
//
//	@Summary	Заказ по ID
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"ID заказа"
//	@Success	200	{object}	orderResponse
//	@Failure	404	{object}	ErrorResponse	"Заказ не найден"
//	@Security	BearerAuth
//	@Router		/orders/{id} [get]
func (o *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	res, err := o.orderUsecase.GetOrder(r.Context(), identityFromCtx(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(res))
}

// updateOrderStatus
//
//	@Summary	Смена статуса заказа
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"ID заказа"
//	@Param		request	body		updateOrderRequest	true	"Новый статус"
//	@Success	200		{object}	orderResponse
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	404		{object}	ErrorResponse	"Заказ не найден"
//	@Security	BearerAuth
//	@Router		/orders/{id} [patch]
func (o *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := o.orderUsecase.UpdateOrderStatus(r.Context(), identityFromCtx(r.Context()), &usecase.UpdateOrderReq{
		ID:     chi.URLParam(r, "id"),
		Status: req.Status,
	})
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(res))
}

// deleteOrder
//
//	@Summary	Удаление заказа
//	@Tags		orders
//	@Param		id	path	string	true	"ID заказа"
//	@Success	204	"Заказ удален"
//	@Failure	404	{object}	ErrorResponse	"Заказ не найден"
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (o *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := o.orderUsecase.DeleteOrder(r.Context(), identityFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
