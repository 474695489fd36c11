package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // десятичная строка, "599.99"
	Stock       int64  `json:"stock"`
}

type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Stock       int64     `json:"stock"`
	InStock     bool      `json:"in_stock"`
	ImageKey    *string   `json:"image_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type productListResponse struct {
	Count    int64             `json:"count"`
	Products []productResponse `json:"products"`
}

type productSummaryResponse struct {
	Count    int64             `json:"count"`
	MaxPrice *string           `json:"max_price"`
	Products []productResponse `json:"products"`
}

func newProductResponse(res *usecase.ProductRes) productResponse {
	return productResponse{
		ID:          res.ID,
		Name:        res.Name,
		Description: res.Description,
		Price:       formatCents(res.Price),
		Stock:       res.Stock,
		InStock:     res.InStock,
		ImageKey:    res.ImageKey,
		CreatedAt:   res.CreatedAt,
	}
}

func newArrProductResponse(products []usecase.ProductRes) []productResponse {
	res := make([]productResponse, 0, len(products))
	for i := range products {
		res = append(res, newProductResponse(&products[i]))
	}

	return res
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает страницу каталога с фильтрацией, поиском и сортировкой
//	@Tags			products
//	@Produce		json
//	@Param			name		query		string	false	"Подстрока имени"
//	@Param			search		query		string	false	"Поиск по имени и описанию"
//	@Param			price_min	query		string	false	"Минимальная цена"
//	@Param			price_max	query		string	false	"Максимальная цена"
//	@Param			in_stock	query		bool	false	"Только товары в наличии"
//	@Param			ordering	query		string	false	"Поле сортировки: name | price | stock, префикс - для убывания"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Param			offset		query		int		false	"Смещение"
//	@Success		200			{object}	productListResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseListProductsQuery(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.ListProducts(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &productListResponse{
		Count:    res.Count,
		Products: newArrProductResponse(res.Products),
	})
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	productResponse
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(res))
}

// getSummary
//
//	@Summary		Сводка каталога
//	@Description	Весь каталог, количество товаров и максимальная цена
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	productSummaryResponse
//	@Router			/products/info [get]
func (p *ProductHandler) getSummary(w http.ResponseWriter, r *http.Request) {
	res, err := p.productUsecase.GetSummary(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &productSummaryResponse{
		Count:    res.Count,
		MaxPrice: formatCentsPtr(res.MaxPrice),
		Products: newArrProductResponse(res.Products),
	})
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		request	body		productRequest	true	"Товар"
//	@Success	201		{object}	productResponse
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	403		{object}	ErrorResponse	"Недостаточно прав"
//	@Security	BearerAuth
//	@Router		/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := p.parseProductRequest(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(res))
}

// updateProduct
//
//	@Summary	Обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		request	body		productRequest	true	"Товар"
//	@Success	200		{object}	productResponse
//	@Failure	404		{object}	ErrorResponse	"Товар не найден"
//	@Security	BearerAuth
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := p.parseProductRequest(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.UpdateProduct(r.Context(), &usecase.UpdateProductReq{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(res))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	int	true	"ID товара"
//	@Success	204	"Товар удален"
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// attachImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Принимает multipart/form-data с полем image
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"ID товара"
//	@Param			image	formData	file	true	"Изображение"
//	@Success		200		{object}	productResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Security		BearerAuth
//	@Router			/products/{id}/image [post]
func (p *ProductHandler) attachImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 32 << 20
		maxFileSize         = 15 << 20
	)

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm.File["image"], maxFileSize)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.AttachImage(r.Context(), &usecase.AttachImageReq{
		ProductID: id,
		Image:     *image,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(res))
}

// parseProductRequest разбирает JSON-тело товара и конвертирует цену в копейки.
func (p *ProductHandler) parseProductRequest(r *http.Request) (*usecase.CreateProductReq, error) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, e.ErrStatusBadRequest
	}

	priceCents, err := parsePriceToCents(req.Price)
	if err != nil {
		return nil, err
	}

	return &usecase.CreateProductReq{
		Name:        req.Name,
		Description: req.Description,
		Price:       priceCents,
		Stock:       req.Stock,
	}, nil
}
