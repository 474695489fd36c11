package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{"integer", "600", 60000, nil},
		{"two decimals", "599.99", 59999, nil},
		{"one decimal", "10.5", 1050, nil},
		{"one cent", "0.01", 1, nil},
		{"zero", "0", 0, nil},
		{"empty", "", 0, e.ErrInvalidPrice},
		{"whitespace", "   ", 0, e.ErrInvalidPrice},
		{"garbage", "abc", 0, e.ErrInvalidPrice},
		{"negative", "-5", 0, e.ErrInvalidPrice},
		{"too many decimals", "1.999", 0, e.ErrPricePrecision},
		{"over limit", "1000000001", 0, e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "599.99", formatCents(59999))
	assert.Equal(t, "600.00", formatCents(60000))
	assert.Equal(t, "0.01", formatCents(1))
	assert.Equal(t, "0.00", formatCents(0))
}

func TestFormatCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 59999, 100000000} {
		parsed, err := parsePriceToCents(formatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.ErrProductNameRequired, http.StatusBadRequest},
		{e.ErrPriceMustBePositive, http.StatusBadRequest},
		{e.ErrNoOrderItems, http.StatusBadRequest},
		{e.ErrQuantityMustBePos, http.StatusBadRequest},
		{e.ErrInvalidOrderStatus, http.StatusBadRequest},
		{e.ErrUnauthorized, http.StatusUnauthorized},
		{e.ErrInvalidToken, http.StatusUnauthorized},
		{e.ErrInvalidCredentials, http.StatusUnauthorized},
		{e.ErrForbidden, http.StatusForbidden},
		{e.ErrProductNotFound, http.StatusNotFound},
		{e.ErrOrderNotFound, http.StatusNotFound},
		{e.ErrUsernameTaken, http.StatusConflict},
		{e.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		code, _ := ToHTTPResponse(tt.err)
		assert.Equal(t, tt.code, code, "error %v", tt.err)
	}
}

func TestToHTTPResponseUnwrapsWrappedErrors(t *testing.T) {
	wrapped := e.Wrap("OrderUseCase.GetOrder", e.ErrOrderNotFound)
	code, msg := ToHTTPResponse(wrapped)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, e.ErrOrderNotFound.Error(), msg)
}

func TestToHTTPResponseHidesInternalDetails(t *testing.T) {
	_, msg := ToHTTPResponse(e.Wrap("pgdb.ProductRepo", assert.AnError))
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}

func TestParseListProductsQueryOrdering(t *testing.T) {
	tests := []struct {
		query   string
		orderBy string
		desc    bool
	}{
		{"", "", false},
		{"ordering=price", "price", false},
		{"ordering=-price", "price", true},
		{"ordering=-name", "name", true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil)
		req, err := parseListProductsQuery(r)
		require.NoError(t, err, "query %q", tt.query)
		assert.Equal(t, tt.orderBy, req.OrderBy, "query %q", tt.query)
		assert.Equal(t, tt.desc, req.Desc, "query %q", tt.query)
	}
}
