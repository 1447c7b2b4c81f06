// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts profile lookups on the /user subtree. The
// by-id lookup stays public; /me requires a resolved session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireUser func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/me", h.GetMe)
	})

	r.Get("/{userID}", h.GetByID)
}

// RegisterAdminRoutes mounts the admin's own-record lookup.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/admin/dashboard", h.GetMe)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(user))
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(id); err != nil {
		core.BadRequest(w, "invalid user ID")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(user))
}
