// AngelaMos | 2026
// handler.go

package shipping

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/middleware"
)

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireUser func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/me/shippingInfo", h.Create)
		r.Get("/me/shippingInfo", h.List)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	info := &ShippingInfo{
		ID:          uuid.New(),
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		SubAddress:  req.SubAddress,
		State:       req.State,
		City:        req.City,
	}

	if err := h.repo.Create(r.Context(), info); err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, info)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.repo.GetByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if infos == nil {
		infos = []ShippingInfo{}
	}

	core.OK(w, infos)
}
