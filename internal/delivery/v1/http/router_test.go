package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeAuthUC выдает фиксированные Identity по известным токенам.
type fakeAuthUC struct{}

func (fakeAuthUC) Register(ctx context.Context, req *usecase.RegisterReq) (*usecase.AuthRes, error) {
	return &usecase.AuthRes{Token: "customer-token", UserID: 7}, nil
}

func (fakeAuthUC) Login(ctx context.Context, req *usecase.LoginReq) (*usecase.AuthRes, error) {
	return &usecase.AuthRes{Token: "customer-token", UserID: 7}, nil
}

func (fakeAuthUC) ParseToken(ctx context.Context, token string) (usecase.Identity, error) {
	switch token {
	case "customer-token":
		return usecase.Identity{UserID: 7}, nil
	case "admin-token":
		return usecase.Identity{UserID: 1, IsAdmin: true}, nil
	default:
		return usecase.Identity{}, e.ErrInvalidToken
	}
}

type fakeProductUC struct {
	created *usecase.CreateProductReq
}

func (f *fakeProductUC) ListProducts(ctx context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	return &usecase.ListProductsRes{}, nil
}

func (f *fakeProductUC) GetProduct(ctx context.Context, id int64) (*usecase.ProductRes, error) {
	return nil, e.ErrProductNotFound
}

func (f *fakeProductUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductRes, error) {
	f.created = req
	return &usecase.ProductRes{ID: 1, Name: req.Name, Price: req.Price, Stock: req.Stock}, nil
}

func (f *fakeProductUC) UpdateProduct(ctx context.Context, req *usecase.UpdateProductReq) (*usecase.ProductRes, error) {
	return &usecase.ProductRes{ID: req.ID, Name: req.Name, Price: req.Price}, nil
}

func (f *fakeProductUC) DeleteProduct(ctx context.Context, id int64) error { return nil }

func (f *fakeProductUC) GetSummary(ctx context.Context) (*usecase.ProductSummaryRes, error) {
	return &usecase.ProductSummaryRes{}, nil
}

func (f *fakeProductUC) AttachImage(ctx context.Context, req *usecase.AttachImageReq) (*usecase.ProductRes, error) {
	return &usecase.ProductRes{ID: req.ProductID}, nil
}

type fakeOrderUC struct {
	createActor usecase.Identity
	createReq   *usecase.CreateOrderReq
}

func (f *fakeOrderUC) CreateOrder(ctx context.Context, actor usecase.Identity, req *usecase.CreateOrderReq) (*usecase.OrderRes, error) {
	f.createActor = actor
	f.createReq = req
	return &usecase.OrderRes{ID: "o1", UserID: actor.UserID}, nil
}

func (f *fakeOrderUC) GetOrder(ctx context.Context, actor usecase.Identity, id string) (*usecase.OrderRes, error) {
	return nil, e.ErrOrderNotFound
}

func (f *fakeOrderUC) ListOrders(ctx context.Context, actor usecase.Identity, req *usecase.ListOrdersReq) ([]*usecase.OrderRes, error) {
	return nil, nil
}

func (f *fakeOrderUC) UpdateOrderStatus(ctx context.Context, actor usecase.Identity, req *usecase.UpdateOrderReq) (*usecase.OrderRes, error) {
	return nil, e.ErrOrderNotFound
}

func (f *fakeOrderUC) DeleteOrder(ctx context.Context, actor usecase.Identity, id string) error {
	return e.ErrOrderNotFound
}

func newTestRouter(prUC usecase.ProductUC, ordUC usecase.OrderUC) *chi.Mux {
	r := chi.NewRouter()
	NewRouter(r, nopLogger{}).Init(prUC, ordUC, fakeAuthUC{})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListProductsAnonymous(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})
	body := `{"name":"Widget","price":"599.99","stock":5}`

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/products", "customer-token", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProductAsAdmin(t *testing.T) {
	prUC := &fakeProductUC{}
	router := newTestRouter(prUC, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products", "admin-token",
		`{"name":"Widget","description":"d","price":"599.99","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, prUC.created)
	assert.Equal(t, int64(59999), prUC.created.Price)

	var res productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "599.99", res.Price)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products", "admin-token",
		`{"name":"Widget","price":"1.999","stock":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/orders", "",
		`{"items":[{"product_id":1,"quantity":2}]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderIgnoresClientSuppliedOwner(t *testing.T) {
	ordUC := &fakeOrderUC{}
	router := newTestRouter(&fakeProductUC{}, ordUC)

	// user_id в теле игнорируется: владелец берется из токена
	rec := doRequest(t, router, http.MethodPost, "/api/v1/orders", "customer-token",
		`{"user_id":999,"items":[{"product_id":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, int64(7), ordUC.createActor.UserID)
	require.Len(t, ordUC.createReq.Items, 1)
	assert.Equal(t, int64(2), ordUC.createReq.Items[0].Quantity)

	var res orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(7), res.UserID)
}

func TestInvalidTokenRejected(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products", "bogus-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMissingProduct(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	router := newTestRouter(&fakeProductUC{}, &fakeOrderUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/orders?status=Shipped", "customer-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
