package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ginaisthando/sound/internal/catalog"
	"github.com/ginaisthando/sound/internal/service"
	"github.com/ginaisthando/sound/pkg/httputil"
	"github.com/ginaisthando/sound/pkg/pagination"
)

const defaultRelatedLimit = 3

// CatalogHandler serves the pack catalog endpoints.
type CatalogHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers catalog routes on the router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/packs", h.ListPacks)
	r.Get("/packs/free", h.ListFreePacks)
	r.Get("/packs/{id}", h.GetPack)
	r.Get("/packs/{id}/related", h.RelatedPacks)
	r.Get("/categories", h.ListCategories)
	r.Get("/plans", h.ListPlans)
}

// ListPacks handles GET /packs with search, filter, and sort query params.
func (h *CatalogHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	params := catalogParamsFromRequest(r)
	packs := h.svc.ListPacks(r.Context(), params)

	page := pagination.FromRequest(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(pagination.Slice(packs, page), len(packs), page),
	})
}

// ListFreePacks handles GET /packs/free.
func (h *CatalogHandler) ListFreePacks(w http.ResponseWriter, r *http.Request) {
	params := catalogParamsFromRequest(r)
	packs := h.svc.ListFreePacks(r.Context(), params)

	page := pagination.FromRequest(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(pagination.Slice(packs, page), len(packs), page),
	})
}

// GetPack handles GET /packs/{id}.
func (h *CatalogHandler) GetPack(w http.ResponseWriter, r *http.Request) {
	pack, err := h.svc.GetPack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pack})
}

// RelatedPacks handles GET /packs/{id}/related.
func (h *CatalogHandler) RelatedPacks(w http.ResponseWriter, r *http.Request) {
	limit := defaultRelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 20 {
			limit = v
		}
	}

	packs, err := h.svc.RelatedPacks(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: packs})
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.svc.ListCategories(r.Context())})
}

// ListPlans handles GET /plans.
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.svc.ListPlans(r.Context())})
}

// catalogParamsFromRequest maps query string params onto the query engine's
// input: q (substring search), categories (comma separated), free (bool),
// and sort.
func catalogParamsFromRequest(r *http.Request) catalog.Params {
	q := r.URL.Query()

	var categories []string
	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	freeOnly, _ := strconv.ParseBool(q.Get("free"))

	return catalog.Params{
		Query:      strings.TrimSpace(q.Get("q")),
		Categories: categories,
		FreeOnly:   freeOnly,
		SortBy:     q.Get("sort"),
	}
}
