// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adeyemi-dev/storefront/internal/core"
)

var ErrProductNotFound = errors.New("product not found")

// ProductProvider is the slice of the catalog the aggregator needs: the
// line item's name, price, and type come from the listing, never from
// the client.
type ProductProvider interface {
	GetListing(ctx context.Context, id string) (ProductListing, error)
}

type ProductListing struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Type  string
}

type Service struct {
	repo     Repository
	products ProductProvider
}

func NewService(repo Repository, products ProductProvider) *Service {
	return &Service{repo: repo, products: products}
}

// AddToCart appends one line item to the caller's cart, creating the
// cart on first use. A nonexistent product fails before any cart
// mutation happens.
func (s *Service) AddToCart(
	ctx context.Context,
	userID, productID string,
	quantity int,
) (*Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf(
			"purchase quantity must be positive: %w",
			core.ErrInvalidInput,
		)
	}

	listing, err := s.products.GetListing(ctx, productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	cart, err := s.repo.AppendItem(ctx, userID, LineItem{
		ProductID: listing.ID,
		Name:      listing.Name,
		Price:     listing.Price,
		Quantity:  quantity,
		Type:      listing.Type,
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// GetCart returns the caller's cart; a user who never added anything
// gets an empty one rather than an error.
func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return &Cart{Items: LineItems{}, TotalPrice: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}
