package http

import (
	"net/http"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Ищет товары по свободному запросу с учетом предпочтений сессии. Пустой запрос возвращает весь каталог.
//	@Tags			products
//	@Produce		json
//	@Param			q				query		string	false	"Поисковый запрос"
//	@Param			X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success		200				{object}	ProductsResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	session := sessionID(r)

	p.logger.Infof("Search called: session=%s query=%q", session, query)

	products, err := p.catalogUsecase.Search(r.Context(), session, query)
	if err != nil {
		p.logger.Errorf(err, "Search failed: query=%q", query)
		WriteError(w, err)
		return
	}

	p.logger.Infof("Search found %d items", len(products))

	WriteSuccess(w, http.StatusOK, &ProductsResponse{
		Products: toArrProductDTO(products),
		Message:  presenter.Products(products),
	})
}

// listCatalog
//
//	@Summary		Фильтрация каталога
//	@Description	Возвращает товары, подходящие под все заданные фильтры. Границы цены включительные.
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Категория (без учета регистра)"
//	@Param			min_price	query		number	false	"Минимальная цена"
//	@Param			max_price	query		number	false	"Максимальная цена"
//	@Param			color		query		string	false	"Цвет (подстрока)"
//	@Param			search		query		string	false	"Подстрока названия или описания"
//	@Success		200			{object}	ProductsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/catalog [get]
func (p *ProductHandler) listCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := parsePrice(q.Get("min_price"))
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	maxPrice, err := parsePrice(q.Get("max_price"))
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	filter := &usecase.ProductFilter{
		Category: optionalString(q.Get("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Color:    optionalString(q.Get("color")),
		Search:   optionalString(q.Get("search")),
	}

	products, err := p.catalogUsecase.ListProducts(r.Context(), filter)
	if err != nil {
		p.logger.Errorf(err, "List products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ProductsResponse{
		Products: toArrProductDTO(products),
		Message:  presenter.Products(products),
	})
}

// getProduct
//
//	@Summary		Товар по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := p.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("Get product %s failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	dto := toProductDTO(product)
	WriteSuccess(w, http.StatusOK, &ProductResponse{
		Product: &dto,
		Message: presenter.Product(product),
	})
}
