package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ginaisthando/sound/internal/domain"
	"github.com/ginaisthando/sound/internal/service"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
	"github.com/ginaisthando/sound/pkg/httputil"
	"github.com/ginaisthando/sound/pkg/validator"
)

// SessionHeader carries the anonymous session identifier that scopes a cart.
const SessionHeader = "X-Session-ID"

// CartHandler serves the cart endpoints. Every route is scoped to the
// session identified by the X-Session-ID header.
type CartHandler struct {
	cart    *service.CartService
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart *service.CartService, catalog *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, logger: logger}
}

// RegisterRoutes registers cart routes on the router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{packId}", h.UpdateQuantity)
	r.Delete("/cart/items/{packId}", h.RemoveItem)
}

type addItemRequest struct {
	PackID string `json:"pack_id" validate:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartResponse augments the aggregate with its derived totals so clients do
// not recompute them.
type cartResponse struct {
	SessionID   string            `json:"session_id"`
	Items       []domain.CartItem `json:"items"`
	ItemCount   int               `json:"item_count"`
	TotalAmount int64             `json:"total_amount"`
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/items. The pack's current catalog price is
// snapshotted onto the cart line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pack, err := h.catalog.GetPack(r.Context(), req.PackID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.cart.AddItem(r.Context(), sessionID, *pack)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// UpdateQuantity handles PUT /cart/items/{packId}. A quantity of zero or
// less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.UpdateQuantity(r.Context(), sessionID, chi.URLParam(r, "packId"), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{packId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "packId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.cart.ClearCart(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("X-Session-ID header is required"), h.logger)
		return "", false
	}
	return id, true
}

func (h *CartHandler) writeCart(w http.ResponseWriter, status int, cart *domain.Cart) {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	httputil.WriteJSON(w, status, httputil.Response{Data: cartResponse{
		SessionID:   cart.SessionID,
		Items:       items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}})
}
