// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adeyemi-dev/storefront/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products
			(id, name, description, price, base_quantity, quantity,
			 cover_image, other_images, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	err := r.db.GetContext(ctx, product, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.BaseQuantity,
		product.Quantity,
		product.CoverImage,
		product.OtherImages,
		product.Type,
	)
	if err != nil {
		return core.StorageErr("create product", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, name, description, price, base_quantity, quantity,
		       cover_image, other_images, type, created_at, updated_at
		FROM products
		WHERE id = $1`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get product", err)
	}

	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, description, price, base_quantity, quantity,
		       cover_image, other_images, type, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, core.StorageErr("list products", err)
	}

	return products, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM products`

	ctx, cancel := core.StorageContext(ctx)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, core.StorageErr("count products", err)
	}

	return total, nil
}
