package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/grocery-pos/internal/stub-backend/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/search", handler.SearchProducts)
		r.Post("/invoice/create", handler.CreateInvoice)
		r.Get("/invoice/{id}", handler.GetInvoice)
	})
	return r
}
