// AngelaMos | 2026
// handler.go

package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/middleware"
	"github.com/adeyemi-dev/storefront/internal/session"
)

type AddToCartRequest struct {
	PurchaseQuantity int `json:"purchaseQuantity" validate:"required,gt=0"`
}

type Handler struct {
	service   *Service
	issuer    session.Issuer
	validator *validator.Validate
}

func NewHandler(service *Service, issuer session.Issuer) *Handler {
	return &Handler{
		service:   service,
		issuer:    issuer,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterAddRoute hangs add-to-cart off the /product subtree, keyed by
// the product being added.
func (h *Handler) RegisterAddRoute(
	r chi.Router,
	requireUser func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/{productID}/addtocart", h.AddToCart)
	})
}

// RegisterRoutes mounts cart retrieval on its own subtree.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireUser func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", h.GetCart)
	})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	cart, err := h.service.AddToCart(
		r.Context(),
		userID,
		chi.URLParam(r, "productID"),
		req.PurchaseQuantity,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			core.BadRequest(w, "Product not found.")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.JSONError(w, err)
		}
		return
	}

	// Server-side sessions remember the active cart; the token strategy
	// has nothing to bind, and a session that expired mid-request still
	// gets its cart row back on the next login.
	if value := middleware.AssertionFrom(r.Context()); value != "" {
		err := h.issuer.BindCart(r.Context(), value, cart.ID.String())
		if err != nil && !errors.Is(err, session.ErrExpired) {
			slog.Warn("bind cart to session", "error", err)
		}
	}

	core.OK(w, cart)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, cart)
}
