// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/middleware"
	"github.com/adeyemi-dev/storefront/internal/session"
)

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

// RegisterRoutes mounts the account endpoints on the /user subtree.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireUser, requireAdmin func(http.Handler) http.Handler,
) {
	r.Post("/create", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/logout", h.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/admin/logout", h.Logout)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, handle, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("invalid email/password"),
			)
			return
		}
		if errors.Is(err, core.ErrStorageUnavailable) {
			core.JSONError(w, core.StorageUnavailableError())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.issuer.Attach(w, handle)
	core.OK(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	value := middleware.AssertionFrom(r.Context())
	if value == "" {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Logout(r.Context(), value); err != nil {
		if errors.Is(err, core.ErrStorageUnavailable) {
			core.JSONError(w, core.StorageUnavailableError())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.issuer.Clear(w)
	core.OK(w, nil)
}
