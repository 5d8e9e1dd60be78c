package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ginaisthando/sound/internal/service"
	apperrors "github.com/ginaisthando/sound/pkg/errors"
	"github.com/ginaisthando/sound/pkg/httputil"
	"github.com/ginaisthando/sound/pkg/validator"
)

// IdempotencyKeyHeader lets clients resubmit a checkout without risking a
// double charge.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// CheckoutHandler serves the checkout endpoint.
type CheckoutHandler struct {
	svc    *service.CheckoutService
	logger *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers checkout routes on the router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
}

// Checkout handles POST /checkout. On success the response is the completed
// order and the session's cart is empty; on any failure the cart is
// untouched and the client may retry.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
	if sessionID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("X-Session-ID header is required"), h.logger)
		return
	}

	var input service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	input.IdempotencyKey = strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))

	order, err := h.svc.Checkout(r.Context(), sessionID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
