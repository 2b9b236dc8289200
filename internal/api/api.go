package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"train-service/internal/registry"
)

// CatalogService serves the read-only model catalog alongside the worker so
// clients can generate configuration forms.
type CatalogService struct {
	registry *registry.Registry
}

func NewCatalogService(reg *registry.Registry) *CatalogService {
	return &CatalogService{registry: reg}
}

func (s *CatalogService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	}))
	r.Get("/models", RestHandler(s.GetModelCatalog))
}

func (s *CatalogService) GetModelCatalog(r *http.Request) (any, error) {
	return s.registry.Catalog(), nil
}
