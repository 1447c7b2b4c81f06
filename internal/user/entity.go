// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	FirstName    string    `db:"first_name"    json:"firstName"`
	LastName     string    `db:"last_name"     json:"lastName"`
	Email        string    `db:"email"         json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Avatar       string    `db:"avatar"        json:"avatar"`
	IsAdmin      bool      `db:"is_admin"      json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}
