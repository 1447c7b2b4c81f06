// AngelaMos | 2026
// entity.go

package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeFashion     = "fashion"
	TypeElectronics = "electronics"
)

// ImagePaths stores the gallery as a JSONB column.
type ImagePaths []string

func (p ImagePaths) Value() (driver.Value, error) {
	if p == nil {
		p = ImagePaths{}
	}
	return json.Marshal(p)
}

func (p *ImagePaths) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("scan image paths: unsupported type %T", src)
	}
}

type Product struct {
	ID           uuid.UUID       `db:"id"            json:"id"`
	Name         string          `db:"name"          json:"name"`
	Description  string          `db:"description"   json:"description"`
	Price        decimal.Decimal `db:"price"         json:"price"`
	BaseQuantity int             `db:"base_quantity" json:"baseQuantity"`
	Quantity     int             `db:"quantity"      json:"quantity"`
	CoverImage   string          `db:"cover_image"   json:"coverImage"`
	OtherImages  ImagePaths      `db:"other_images"  json:"otherImages"`
	Type         string          `db:"type"          json:"type"`
	CreatedAt    time.Time       `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at"    json:"updatedAt"`
}
