package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// AuthUseCase реализует регистрацию, вход и проверку токенов.
type AuthUseCase struct {
	userRepo UserRepository
	cfg      *cfg.AuthCfg
	logger   logger.Logger
}

func NewAuthUC(userRepo UserRepository, cfg *cfg.AuthCfg, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// claims — полезная нагрузка JWT.
type claims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// Register создает учетную запись покупателя и возвращает токен.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*AuthRes, error) {
	const op = "AuthUseCase.Register"

	if strings.TrimSpace(req.Username) == "" {
		return nil, e.Wrap(op, e.ErrUsernameRequired)
	}

	if len(req.Password) < minPasswordLen {
		return nil, e.Wrap(op, e.ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(req.Username, string(hash)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.issueToken(user)
}

// Login проверяет учетные данные и возвращает токен.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*AuthRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	return a.issueToken(user)
}

// ParseToken валидирует токен и возвращает Identity вызывающего.
// Пользователь перечитывается из хранилища: токен удаленного пользователя
// недействителен, а роль берется актуальная, а не из claims.
func (a *AuthUseCase) ParseToken(ctx context.Context, token string) (Identity, error) {
	const op = "AuthUseCase.ParseToken"

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrInvalidToken
		}
		return a.cfg.JWTSecret, nil
	})
	if err != nil {
		return Identity{}, e.Wrap(op, e.ErrInvalidToken)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Identity{}, e.Wrap(op, e.ErrInvalidToken)
	}

	user, err := a.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return Identity{}, e.Wrap(op, e.ErrInvalidToken)
		}
		return Identity{}, e.Wrap(op, err)
	}

	return Identity{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (a *AuthUseCase) issueToken(user *domain.User) (*AuthRes, error) {
	const op = "AuthUseCase.issueToken"

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	})

	signed, err := token.SignedString(a.cfg.JWTSecret)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &AuthRes{
		Token:   signed,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	}, nil
}
