// AngelaMos | 2026
// dto.go

package product

// CreateProductRequest carries the multipart form fields; the images
// arrive as file parts alongside it.
type CreateProductRequest struct {
	Name         string `validate:"required,min=1,max=255"`
	Description  string `validate:"required"`
	Price        string `validate:"required"`
	BaseQuantity string `validate:"required"`
	Quantity     string `validate:"omitempty"`
	Type         string `validate:"required,oneof=fashion electronics"`
}
