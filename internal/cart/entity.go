// AngelaMos | 2026
// entity.go

package cart

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one add-to-cart call. Repeated adds of the same product
// append new lines rather than merging quantities.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Type      string          `json:"type"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItems stores the item sequence as a JSONB column.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

func (l *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan line items: unsupported type %T", src)
	}
}

func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Cart is the single active cart per user. TotalPrice is maintained in
// the same statement that appends items; it always equals Items.Total().
type Cart struct {
	ID         uuid.UUID       `db:"id"          json:"id"`
	UserID     uuid.UUID       `db:"user_id"     json:"userId"`
	Items      LineItems       `db:"items"       json:"items"`
	TotalPrice decimal.Decimal `db:"total_price" json:"totalPrice"`
	Version    int             `db:"version"     json:"-"`
	CreatedAt  time.Time       `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at"  json:"updatedAt"`
}
