package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

type ctxKey int

const identityKey ctxKey = iota

// identityFromCtx возвращает Identity вызывающего.
// Для неаутентифицированных запросов возвращает нулевую Identity.
func identityFromCtx(ctx context.Context) usecase.Identity {
	id, ok := ctx.Value(identityKey).(usecase.Identity)
	if !ok {
		return usecase.Identity{}
	}
	return id
}

// AuthMiddleware разбирает Bearer-токен, если он есть, и кладет Identity
// в контекст. Запросы без токена проходят дальше анонимно; запросы с
// невалидным токеном отклоняются.
type AuthMiddleware struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthMiddleware(authUC usecase.AuthUC, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, logger: logger}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			m.logger.Warnf("%d malformed Authorization header", http.StatusUnauthorized)
			WriteError(w, e.ErrInvalidToken)
			return
		}

		identity, err := m.authUC.ParseToken(r.Context(), token)
		if err != nil {
			m.logger.Warnf("%d token rejected: %s", http.StatusUnauthorized, err.Error())
			WriteError(w, e.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth отклоняет анонимные запросы.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := identityFromCtx(r.Context())
		if identity.Role() == usecase.RoleAnonymous {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireProductWrite пропускает только тех, кому разрешена запись каталога.
func (m *AuthMiddleware) RequireProductWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := identityFromCtx(r.Context())
		if identity.Role() == usecase.RoleAnonymous {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		if !usecase.Allowed(usecase.OpProductWrite, identity.Role(), usecase.OwnershipAny) {
			m.logger.Warnf("%d catalog write denied for user %d", http.StatusForbidden, identity.UserID)
			WriteError(w, e.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
