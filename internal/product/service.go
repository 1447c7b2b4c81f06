// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adeyemi-dev/storefront/internal/cart"
	"github.com/adeyemi-dev/storefront/internal/core"
)

var ErrMissingCoverImage = errors.New("cover image required")

type Service struct {
	repo   Repository
	images ImageStore
}

func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) CountProducts(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Create validates the listing fields, persists the images, then the
// row. A rejected image aborts before anything reaches the database.
func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
	cover *multipart.FileHeader,
	others []*multipart.FileHeader,
) (*Product, error) {
	if cover == nil {
		return nil, ErrMissingCoverImage
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf(
			"invalid price %q: %w",
			req.Price,
			core.ErrInvalidInput,
		)
	}

	baseQty, err := strconv.Atoi(req.BaseQuantity)
	if err != nil || baseQty < 0 {
		return nil, fmt.Errorf(
			"invalid base quantity %q: %w",
			req.BaseQuantity,
			core.ErrInvalidInput,
		)
	}

	qty := baseQty
	if req.Quantity != "" {
		qty, err = strconv.Atoi(req.Quantity)
		if err != nil || qty < 0 {
			return nil, fmt.Errorf(
				"invalid quantity %q: %w",
				req.Quantity,
				core.ErrInvalidInput,
			)
		}
	}

	coverPath, err := s.saveImage(cover)
	if err != nil {
		return nil, err
	}

	otherPaths := make(ImagePaths, 0, len(others))
	for _, header := range others {
		path, err := s.saveImage(header)
		if err != nil {
			return nil, err
		}
		otherPaths = append(otherPaths, path)
	}

	product := &Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		BaseQuantity: baseQty,
		Quantity:     qty,
		CoverImage:   coverPath,
		OtherImages:  otherPaths,
		Type:         req.Type,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetListing exposes the slice of a product the cart aggregator prices
// line items from.
func (s *Service) GetListing(
	ctx context.Context,
	id string,
) (cart.ProductListing, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return cart.ProductListing{}, err
	}

	return cart.ProductListing{
		ID:    product.ID.String(),
		Name:  product.Name,
		Price: product.Price,
		Type:  product.Type,
	}, nil
}

var _ cart.ProductProvider = (*Service)(nil)

func (s *Service) saveImage(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close() //nolint:errcheck

	return s.images.Save(file, header)
}
