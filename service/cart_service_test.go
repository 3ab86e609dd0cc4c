package service

import (
	"context"
	"testing"

	"camelia-boutique/models"
	"camelia-boutique/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	added []string
}

func (r *recordingNotifier) ItemAdded(productName, size string) {
	r.added = append(r.added, productName+"/"+size)
}

func testProduct(id int, name string, price int) models.Product {
	return models.Product{
		ID: id, Name: name, Price: price, PrimaryImage: "img.jpg",
		Sizes: []models.SizeStock{{Label: "S", Stock: 3}, {Label: "M", Stock: 1}},
	}
}

// assertInvariants checks the cart invariants that must hold after any
// sequence of operations: unique (product, size) keys and quantity >= 1.
func assertInvariants(t *testing.T, cart *models.Cart) {
	t.Helper()
	seen := map[models.CartKey]bool{}
	for _, line := range cart.Lines {
		assert.False(t, seen[line.Key()], "duplicate key %v", line.Key())
		seen[line.Key()] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
}

func TestCartAddMergesOnKey(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewCartService(repository.NewMemoryCartStore(), notifier)
	robe := testProduct(1, "Robe", 3990)

	cart, err := svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)
	cart, err = svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)
	cart, err = svc.Add(ctx, "s1", robe, "S")
	require.NoError(t, err)

	require.Len(t, cart.Lines, 2)
	assertInvariants(t, cart)

	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "M", cart.Lines[0].SelectedSize)
	assert.Equal(t, 1, cart.Lines[1].Quantity)

	// Every add fired a notification with name and size
	assert.Equal(t, []string{"Robe/M", "Robe/M", "Robe/S"}, notifier.added)
}

func TestCartDerivedTotals(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repository.NewMemoryCartStore(), &recordingNotifier{})

	robe := testProduct(1, "Robe", 3990)
	blouse := testProduct(2, "Blouse", 2500)

	_, err := svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)
	cart, err := svc.Add(ctx, "s1", blouse, "S")
	require.NoError(t, err)

	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, 2*3990+2500, cart.Total())

	// Totals are recomputed from lines, never stored
	cart, err = svc.SetQuantity(ctx, "s1", 1, "M", 5)
	require.NoError(t, err)
	assert.Equal(t, 6, cart.ItemCount())
	assert.Equal(t, 5*3990+2500, cart.Total())
}

func TestCartSetQuantity(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repository.NewMemoryCartStore(), &recordingNotifier{})
	robe := testProduct(1, "Robe", 3990)

	_, err := svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)

	// Negative quantity is a no-op
	cart, err := svc.SetQuantity(ctx, "s1", 1, "M", -2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	// Zero removes the line
	cart, err = svc.SetQuantity(ctx, "s1", 1, "M", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	// Setting quantity on an absent line is a no-op
	cart, err = svc.SetQuantity(ctx, "s1", 99, "M", 3)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assertInvariants(t, cart)
}

func TestCartRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repository.NewMemoryCartStore(), &recordingNotifier{})
	robe := testProduct(1, "Robe", 3990)

	_, err := svc.Add(ctx, "s1", robe, "M")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", robe, "S")
	require.NoError(t, err)

	cart, err := svc.Remove(ctx, "s1", 1, "M")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "S", cart.Lines[0].SelectedSize)

	// Removing an absent key is a no-op
	cart, err = svc.Remove(ctx, "s1", 1, "XL")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repository.NewMemoryCartStore(), &recordingNotifier{})

	_, err := svc.Add(ctx, "s1", testProduct(1, "Robe", 3990), "M")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.Total())
}

func TestCartSurvivesCorruptState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryCartStore()
	svc := NewCartService(store, &recordingNotifier{})

	_, err := svc.Add(ctx, "s1", testProduct(1, "Robe", 3990), "M")
	require.NoError(t, err)

	store.Corrupt("s1")

	// Corrupt stored state reads as an empty cart, not an error
	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	// And the cart is usable again
	cart, err = svc.Add(ctx, "s1", testProduct(2, "Blouse", 2500), "S")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repository.NewMemoryCartStore(), &recordingNotifier{})

	_, err := svc.Add(ctx, "alice", testProduct(1, "Robe", 3990), "M")
	require.NoError(t, err)

	cart, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
