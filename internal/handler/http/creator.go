package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ginaisthando/sound/internal/service"
	"github.com/ginaisthando/sound/pkg/httputil"
	"github.com/ginaisthando/sound/pkg/validator"
)

// CreatorHandler serves creator registration.
type CreatorHandler struct {
	svc    *service.CreatorService
	logger *slog.Logger
}

// NewCreatorHandler creates a new creator handler.
func NewCreatorHandler(svc *service.CreatorService, logger *slog.Logger) *CreatorHandler {
	return &CreatorHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers creator routes on the router.
func (h *CreatorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/creators/signup", h.SignUp)
}

// SignUp handles POST /creators/signup.
func (h *CreatorHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	creator, err := h.svc.SignUp(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: creator})
}
