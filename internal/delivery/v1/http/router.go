package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/grocery-merchant/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, preferenceUC usecase.PreferenceUC, orderUC usecase.OrderUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.logRequests)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(catalogUC, r.logger))
		registerContextRoutes(v1, NewContextHandler(preferenceUC, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger))
	})
}

// Handler возвращает корневой http.Handler.
func (r *Router) Handler() http.Handler {
	return r.router
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Get("/products", h.searchProducts)
	router.Get("/products/{id}", h.getProduct)
	router.Get("/catalog", h.listCatalog)
}

func registerContextRoutes(router chi.Router, h *ContextHandler) {
	router.Route("/context", func(cr chi.Router) {
		cr.Get("/", h.getContext)
		cr.Post("/", h.updateContext)
		cr.Delete("/", h.resetContext)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Get("/", h.listOrders)
		or.Post("/", h.createOrder)
		or.Get("/last", h.getLastOrder)
		or.Get("/{id}", h.getOrder)
	})
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s -> %d (%s) request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
