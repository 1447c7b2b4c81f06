// AngelaMos | 2026
// handler.go

package product

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/adeyemi-dev/storefront/internal/config"
	"github.com/adeyemi-dev/storefront/internal/core"
)

type Handler struct {
	service   *Service
	uploads   config.UploadConfig
	validator *validator.Validate
}

func NewHandler(service *Service, uploads config.UploadConfig) *Handler {
	return &Handler{
		service:   service,
		uploads:   uploads,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog on the /product subtree. Listing
// and lookup are public; creation sits behind the configured guard.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireCreator func(http.Handler) http.Handler,
) {
	r.Get("/", h.List)
	r.Get("/{productID}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(requireCreator)
		r.Post("/create", h.Create)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if products == nil {
		products = []Product{}
	}

	core.OK(w, products)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.BadRequest(w, "Product not found.")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, product)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	// One cover plus the gallery, with per-file caps enforced again in
	// the store.
	maxForm := h.uploads.MaxFileSize * int64(h.uploads.MaxOtherImages+1)
	r.Body = http.MaxBytesReader(w, r.Body, maxForm+1<<20)

	if err := r.ParseMultipartForm(maxForm); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	req := CreateProductRequest{
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Price:        r.FormValue("price"),
		BaseQuantity: r.FormValue("baseQuantity"),
		Quantity:     r.FormValue("quantity"),
		Type:         r.FormValue("type"),
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	var cover *multipart.FileHeader
	covers := r.MultipartForm.File["coverImage"]
	if len(covers) > 0 {
		cover = covers[0]
	}

	others := r.MultipartForm.File["otherImages"]
	if len(others) > h.uploads.MaxOtherImages {
		core.BadRequest(w, "too many gallery images")
		return
	}

	product, err := h.service.Create(r.Context(), req, cover, others)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCoverImage):
			core.BadRequest(w, "Please upload a cover image for the product.")
		case errors.Is(err, ErrFileTooLarge),
			errors.Is(err, ErrUnsupportedType),
			errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.JSONError(w, err)
		}
		return
	}

	core.Created(w, product)
}
