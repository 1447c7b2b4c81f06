// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adeyemi-dev/storefront/internal/core"
)

type Repository interface {
	AppendItem(ctx context.Context, userID string, item LineItem) (*Cart, error)
	GetByUser(ctx context.Context, userID string) (*Cart, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// AppendItem creates the user's cart on first add and appends on every
// later one, in a single statement. Concurrent adds for the same user
// serialize on the user_id unique index instead of racing a
// find-then-save pair, so no append or total update can be lost.
func (r *repository) AppendItem(
	ctx context.Context,
	userID string,
	item LineItem,
) (*Cart, error) {
	itemJSON, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode line item: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, total_price)
		VALUES ($1, $2, jsonb_build_array($3::jsonb), $4)
		ON CONFLICT (user_id) DO UPDATE
		SET items       = carts.items || excluded.items,
		    total_price = carts.total_price + excluded.total_price,
		    version     = carts.version + 1,
		    updated_at  = now()
		RETURNING id, user_id, items, total_price, version,
		          created_at, updated_at`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var cart Cart
	err = r.db.GetContext(ctx, &cart, query,
		uuid.New(),
		userID,
		string(itemJSON),
		item.Subtotal(),
	)
	if err != nil {
		return nil, core.StorageErr("append cart item", err)
	}

	return &cart, nil
}

func (r *repository) GetByUser(
	ctx context.Context,
	userID string,
) (*Cart, error) {
	query := `
		SELECT id, user_id, items, total_price, version,
		       created_at, updated_at
		FROM carts
		WHERE user_id = $1`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var cart Cart
	err := r.db.GetContext(ctx, &cart, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get cart: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get cart", err)
	}

	return &cart, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM carts`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, core.StorageErr("count carts", err)
	}

	return total, nil
}
