// AngelaMos | 2026
// service_test.go

package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adeyemi-dev/storefront/internal/core"
)

type fakeCatalog struct {
	listings map[string]ProductListing
}

func (f *fakeCatalog) GetListing(
	_ context.Context,
	id string,
) (ProductListing, error) {
	if l, ok := f.listings[id]; ok {
		return l, nil
	}
	return ProductListing{}, fmt.Errorf("get product: %w", core.ErrNotFound)
}

// fakeRepo mirrors the single-statement upsert: each append is one
// atomic mutation of the user's cart under a lock.
type fakeRepo struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{carts: make(map[string]*Cart)}
}

func (f *fakeRepo) AppendItem(
	_ context.Context,
	userID string,
	item LineItem,
) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.carts[userID]
	if !ok {
		c = &Cart{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			Items:      LineItems{},
			TotalPrice: decimal.Zero,
		}
		f.carts[userID] = c
	}

	c.Items = append(c.Items, item)
	c.TotalPrice = c.TotalPrice.Add(item.Subtotal())
	c.Version++

	snapshot := *c
	snapshot.Items = append(LineItems{}, c.Items...)
	return &snapshot, nil
}

func (f *fakeRepo) GetByUser(_ context.Context, userID string) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.carts[userID]
	if !ok {
		return nil, fmt.Errorf("get cart: %w", core.ErrNotFound)
	}

	snapshot := *c
	snapshot.Items = append(LineItems{}, c.Items...)
	return &snapshot, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.carts), nil
}

func newTestService() (*Service, *fakeRepo) {
	catalog := &fakeCatalog{listings: map[string]ProductListing{
		"P1": {
			ID:    "P1",
			Name:  "Denim Jacket",
			Price: decimal.NewFromInt(10),
			Type:  "fashion",
		},
		"P2": {
			ID:    "P2",
			Name:  "USB Cable",
			Price: decimal.NewFromInt(5),
			Type:  "electronics",
		},
	}}
	repo := newFakeRepo()
	return NewService(repo, catalog), repo
}

// Two adds: 10x2 + 5x1 = 25 across two line items.
func TestAddToCartAccumulates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "u-1", "P1", 2); err != nil {
		t.Fatalf("AddToCart(P1) returned error: %v", err)
	}

	cart, err := svc.AddToCart(ctx, "u-1", "P2", 1)
	if err != nil {
		t.Fatalf("AddToCart(P2) returned error: %v", err)
	}

	if len(cart.Items) != 2 {
		t.Errorf("items = %d, want 2", len(cart.Items))
	}
	if !cart.TotalPrice.Equal(decimal.NewFromInt(25)) {
		t.Errorf("totalPrice = %s, want 25", cart.TotalPrice)
	}
	if !cart.TotalPrice.Equal(cart.Items.Total()) {
		t.Errorf("totalPrice %s diverged from items total %s",
			cart.TotalPrice, cart.Items.Total())
	}
}

// Repeated adds of the same product stay separate line items.
func TestAddToCartDoesNotMergeLines(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.AddToCart(ctx, "u-1", "P1", 1); err != nil {
			t.Fatalf("AddToCart returned error: %v", err)
		}
	}

	cart, err := svc.GetCart(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}

	if len(cart.Items) != 3 {
		t.Errorf("items = %d, want 3 separate lines", len(cart.Items))
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.AddToCart(context.Background(), "u-1", "nope", 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product should fail ErrProductNotFound, got %v", err)
	}

	// The failed add must leave no cart behind.
	if _, err := repo.GetByUser(context.Background(), "u-1"); !errors.Is(err, core.ErrNotFound) {
		t.Error("failed add must not create a cart")
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService()

	for _, qty := range []int{0, -1} {
		_, err := svc.AddToCart(context.Background(), "u-1", "P1", qty)
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("quantity %d should fail ErrInvalidInput, got %v", qty, err)
		}
	}
}

// N concurrent adds for one user lose nothing: N line items, and the
// total equals the sum over all of them.
func TestAddToCartConcurrent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddToCart(ctx, "u-1", "P2", 1); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent AddToCart returned error: %v", err)
	}

	cart, err := svc.GetCart(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}

	if len(cart.Items) != n {
		t.Errorf("items = %d, want %d (lost updates)", len(cart.Items), n)
	}

	want := decimal.NewFromInt(5 * n)
	if !cart.TotalPrice.Equal(want) {
		t.Errorf("totalPrice = %s, want %s", cart.TotalPrice, want)
	}
}

func TestGetCartEmpty(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.GetCart(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}

	if len(cart.Items) != 0 {
		t.Errorf("fresh cart should be empty, got %d items", len(cart.Items))
	}
	if !cart.TotalPrice.IsZero() {
		t.Errorf("fresh cart total = %s, want 0", cart.TotalPrice)
	}
}
