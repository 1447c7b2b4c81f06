// AngelaMos | 2026
// repository.go

package shipping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adeyemi-dev/storefront/internal/core"
)

type Repository interface {
	Create(ctx context.Context, info *ShippingInfo) error
	GetByUser(ctx context.Context, userID string) ([]ShippingInfo, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, info *ShippingInfo) error {
	query := `
		INSERT INTO shipping_info
			(id, user_id, first_name, last_name, phone_number,
			 address, sub_address, state, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	err := r.db.GetContext(ctx, info, query,
		info.ID,
		info.UserID,
		info.FirstName,
		info.LastName,
		info.PhoneNumber,
		info.Address,
		info.SubAddress,
		info.State,
		info.City,
	)
	if err != nil {
		return core.StorageErr("create shipping info", err)
	}

	return nil
}

func (r *repository) GetByUser(
	ctx context.Context,
	userID string,
) ([]ShippingInfo, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone_number,
		       address, sub_address, state, city, created_at, updated_at
		FROM shipping_info
		WHERE user_id = $1
		ORDER BY created_at DESC`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var infos []ShippingInfo
	err := r.db.SelectContext(ctx, &infos, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get shipping info: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get shipping info", err)
	}

	return infos, nil
}
