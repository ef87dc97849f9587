package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// fakeCartRepository keeps cart state in memory with the same merge and
// removal semantics as the SQL store.
type fakeCartRepository struct {
	lines  map[int64]map[int64]int // userID -> plantID -> quantity
	prices map[int64]float64
}

func newFakeCartRepository(prices map[int64]float64) *fakeCartRepository {
	return &fakeCartRepository{
		lines:  make(map[int64]map[int64]int),
		prices: prices,
	}
}

func (f *fakeCartRepository) AddItem(_ context.Context, userID, plantID int64, quantity int) error {
	if f.lines[userID] == nil {
		f.lines[userID] = make(map[int64]int)
	}
	f.lines[userID][plantID] += quantity
	return nil
}

func (f *fakeCartRepository) GetCart(_ context.Context, userID int64) ([]domain.CartLine, error) {
	var result []domain.CartLine
	for plantID, qty := range f.lines[userID] {
		result = append(result, domain.CartLine{
			UserID:   userID,
			PlantID:  plantID,
			Quantity: qty,
			Price:    f.prices[plantID],
		})
	}
	return result, nil
}

func (f *fakeCartRepository) GetCartTotal(_ context.Context, userID int64) (float64, error) {
	var total float64
	for plantID, qty := range f.lines[userID] {
		total += float64(qty) * f.prices[plantID]
	}
	return total, nil
}

func (f *fakeCartRepository) UpdateQuantity(ctx context.Context, userID, plantID int64, quantity int) error {
	if quantity <= 0 {
		return f.RemoveItem(ctx, userID, plantID)
	}
	if f.lines[userID] == nil {
		return nil
	}
	f.lines[userID][plantID] = quantity
	return nil
}

func (f *fakeCartRepository) RemoveItem(_ context.Context, userID, plantID int64) error {
	delete(f.lines[userID], plantID)
	return nil
}

func (f *fakeCartRepository) ClearCart(_ context.Context, userID int64) error {
	delete(f.lines, userID)
	return nil
}

func (f *fakeCartRepository) Count(_ context.Context, userID int64) (int, error) {
	var count int
	for _, qty := range f.lines[userID] {
		count += qty
	}
	return count, nil
}

func TestCartAdd_MergesQuantities(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 10})
	svc := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 7, 2))
	require.NoError(t, svc.Add(ctx, 1, 7, 3))

	lines, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAdd_ClampsQuantityToOne(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 10})
	svc := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 7, 0))
	require.NoError(t, svc.Add(ctx, 1, 7, -5))

	lines, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 10})
	svc := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 7, 2))
	require.NoError(t, svc.UpdateQuantity(ctx, 1, 7, 0))

	lines, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartTotal_MixedPrices(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 12.50, 9: 5.00})
	svc := NewCartService(repo)
	ctx := context.Background()

	// Empty cart totals zero, not an error.
	total, err := svc.Total(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, svc.Add(ctx, 1, 7, 2))
	require.NoError(t, svc.Add(ctx, 1, 9, 1))

	lines, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	subtotals := make(map[int64]float64, len(lines))
	for _, line := range lines {
		subtotals[line.PlantID] = line.Subtotal()
	}
	assert.InDelta(t, 25.00, subtotals[7], 0.001)
	assert.InDelta(t, 5.00, subtotals[9], 0.001)

	total, err = svc.Total(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 30.00, total, 0.001)
}

func TestCartCount_ZeroForNonCustomers(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 10})
	svc := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 7, 4))

	customer := domain.Identity{ID: 1, Role: domain.RoleCustomer}
	admin := domain.Identity{ID: 1, Role: domain.RoleAdmin}

	assert.Equal(t, 4, svc.Count(ctx, customer))
	assert.Zero(t, svc.Count(ctx, admin))
}

func TestCartClear(t *testing.T) {
	repo := newFakeCartRepository(map[int64]float64{7: 10})
	svc := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 7, 2))
	require.NoError(t, svc.Clear(ctx, 1))

	lines, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The badge count resets with the cart.
	customer := domain.Identity{ID: 1, Role: domain.RoleCustomer}
	assert.Zero(t, svc.Count(ctx, customer))
}
