package http

import (
	_ "github.com/DRSN-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, ordUC usecase.OrderUC, authUC usecase.AuthUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	auth := NewAuthMiddleware(authUC, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(auth.Authenticate)

		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger), auth)
		registerOrderRoutes(v1, NewOrderHandler(ordUC, r.logger), auth)
	})
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Route("/auth", func(a chi.Router) {
		a.Post("/register", authHandler.register)
		a.Post("/login", authHandler.login)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, auth *AuthMiddleware) {
	router.Route("/products", func(pr chi.Router) {
		// Чтение каталога открыто всем.
		pr.Get("/", prHandler.listProducts)
		pr.Get("/info", prHandler.getSummary)
		pr.Get("/{id}", prHandler.getProduct)

		pr.Group(func(adm chi.Router) {
			adm.Use(auth.RequireProductWrite)
			adm.Post("/", prHandler.createProduct)
			adm.Put("/{id}", prHandler.updateProduct)
			adm.Delete("/{id}", prHandler.deleteProduct)
			adm.Post("/{id}/image", prHandler.attachImage)
		})
	})
}

func registerOrderRoutes(router chi.Router, ordHandler *OrderHandler, auth *AuthMiddleware) {
	router.Route("/orders", func(ord chi.Router) {
		ord.Use(auth.RequireAuth)

		ord.Post("/", ordHandler.createOrder)
		ord.Get("/", ordHandler.listOrders)
		ord.Get("/{id}", ordHandler.getOrder)
		ord.Patch("/{id}", ordHandler.updateOrderStatus)
		ord.Delete("/{id}", ordHandler.deleteOrder)
	})
}
