// AngelaMos | 2026
// entity.go

package shipping

import (
	"time"

	"github.com/google/uuid"
)

type ShippingInfo struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	UserID      uuid.UUID `db:"user_id"      json:"userId"`
	FirstName   string    `db:"first_name"   json:"firstName"`
	LastName    string    `db:"last_name"    json:"lastName"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	Address     string    `db:"address"      json:"address"`
	SubAddress  string    `db:"sub_address"  json:"subAddress,omitempty"`
	State       string    `db:"state"        json:"state"`
	City        string    `db:"city"         json:"city"`
	CreatedAt   time.Time `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updatedAt"`
}
