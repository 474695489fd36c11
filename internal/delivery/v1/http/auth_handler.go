package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

func newAuthResponse(res *usecase.AuthRes) *authResponse {
	return &authResponse{
		Token:   res.Token,
		UserID:  res.UserID,
		IsAdmin: res.IsAdmin,
	}
}

// register
//
//	@Summary		Регистрация пользователя
//	@Description	Создает учетную запись и возвращает JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Логин и пароль"
//	@Success		201		{object}	authResponse		"Учетная запись создана"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse		"Логин занят"
//	@Router			/auth/register [post]
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := a.authUsecase.Register(r.Context(), &usecase.RegisterReq{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newAuthResponse(res))
}

// login
//
//	@Summary		Вход пользователя
//	@Description	Проверяет учетные данные и возвращает JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Логин и пароль"
//	@Success		200		{object}	authResponse		"Токен выдан"
//	@Failure		401		{object}	ErrorResponse		"Неверные учетные данные"
//	@Router			/auth/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := a.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAuthResponse(res))
}
