package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request — ошибки валидации домена
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrStockMustBeNonNeg    = fmt.Errorf("stock must be non-negative")
	ErrInvalidPrice         = fmt.Errorf("invalid price value")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrNoOrderItems         = fmt.Errorf("order must contain at least one item")
	ErrQuantityMustBePos    = fmt.Errorf("quantity must be positive")
	ErrInvalidOrderStatus   = fmt.Errorf("invalid order status")
	ErrUsernameRequired     = fmt.Errorf("username is required")
	ErrPasswordTooShort     = fmt.Errorf("password is too short")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrNoImage              = fmt.Errorf("no image provided")
	ErrFileTooLarge         = fmt.Errorf("file is too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 401 / 403
	ErrUnauthorized       = fmt.Errorf("authorization required")
	ErrInvalidToken       = fmt.Errorf("invalid token")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrForbidden          = fmt.Errorf("operation is not allowed")

	// 404 Not Found
	// ErrOrderNotFound возвращается и для чужих заказов,
	// чтобы не раскрывать факт их существования.
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")
	ErrUserNotFound    = fmt.Errorf("user not found")

	// 409 Conflict
	ErrUsernameTaken = fmt.Errorf("username is already taken")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
