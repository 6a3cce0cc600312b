package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

func product(id int64, name string, price string, stock int) entity.Product {
	return entity.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Quantity: stock}
}

func TestAdd_OutOfStockNeverTouchesCart(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(2, "Bread", "40", 5)))
	before := s.Lines()
	version := s.Version()

	err := s.Add(product(1, "Milk", "120", 0))

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, before, s.Lines())
	assert.Equal(t, version, s.Version())
}

func TestAdd_IncrementsUpToStockCeiling(t *testing.T) {
	s := NewStore()
	milk := product(1, "Milk", "120", 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Add(milk))
	}
	err := s.Add(milk)

	assert.ErrorIs(t, err, ErrStockCeiling)
	require.Equal(t, 1, s.Len())
	line, ok := s.Line(1)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 3, line.MaxQuantity)
}

func TestAdd_NewLineCarriesProductData(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(7, "Eggs (12)", "310.50", 9)))

	assert.Equal(t, []entity.CartLine{{
		ProductID:   7,
		Name:        "Eggs (12)",
		UnitPrice:   decimal.RequireFromString("310.50"),
		Quantity:    1,
		MaxQuantity: 9,
	}}, s.Lines())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(3, "C", "1", 5)))
	require.NoError(t, s.Add(product(1, "A", "1", 5)))
	require.NoError(t, s.Add(product(2, "B", "1", 5)))
	require.NoError(t, s.Add(product(1, "A", "1", 5)))

	var ids []int64
	for _, l := range s.Lines() {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestRemove(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(1, "Milk", "120", 3)))

	assert.False(t, s.Remove(99))
	assert.True(t, s.Remove(1))
	assert.Zero(t, s.Len())
}

func TestAdjustQuantity(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		delta   int
		wantQty int
		wantErr error
		removed bool
	}{
		{name: "increment", start: 1, delta: 1, wantQty: 2},
		{name: "decrement", start: 2, delta: -1, wantQty: 1},
		{name: "to zero removes", start: 1, delta: -1, removed: true},
		{name: "below zero removes", start: 2, delta: -5, removed: true},
		{name: "up to ceiling", start: 2, delta: 2, wantQty: 4},
		{name: "past ceiling rejected", start: 4, delta: 1, wantQty: 4, wantErr: ErrExceedsStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			milk := product(1, "Milk", "120", 4)
			for i := 0; i < tt.start; i++ {
				require.NoError(t, s.Add(milk))
			}

			err := s.AdjustQuantity(1, tt.delta)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			line, ok := s.Line(1)
			if tt.removed {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantQty, line.Quantity)
		})
	}
}

func TestAdjustQuantity_NeverLeavesInvalidLine(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(1, "Milk", "120", 3)))
	require.NoError(t, s.Add(product(2, "Bread", "40", 2)))

	for _, d := range []int{3, -1, 5, -2, 1, 1, -10, 2} {
		_ = s.AdjustQuantity(1, d)
		_ = s.AdjustQuantity(2, d)
		for _, l := range s.Lines() {
			assert.GreaterOrEqual(t, l.Quantity, 1)
			assert.LessOrEqual(t, l.Quantity, l.MaxQuantity)
		}
	}
}

func TestAdjustQuantity_UnknownProductIsNoop(t *testing.T) {
	s := NewStore()
	version := s.Version()
	assert.NoError(t, s.AdjustQuantity(42, 1))
	assert.Equal(t, version, s.Version())
}

func TestSubscribe_OneNotificationPerMutation(t *testing.T) {
	s := NewStore()
	var snapshots [][]entity.CartLine
	s.Subscribe(func(lines []entity.CartLine) { snapshots = append(snapshots, lines) })

	milk := product(1, "Milk", "120", 2)
	require.NoError(t, s.Add(milk))
	require.NoError(t, s.Add(milk))
	assert.ErrorIs(t, s.Add(milk), ErrStockCeiling)
	assert.ErrorIs(t, s.AdjustQuantity(1, 1), ErrExceedsStock)
	require.NoError(t, s.AdjustQuantity(1, -2))

	require.Len(t, snapshots, 3)
	assert.Equal(t, 1, snapshots[0][0].Quantity)
	assert.Equal(t, 2, snapshots[1][0].Quantity)
	assert.Empty(t, snapshots[2])
}

func TestSubscribe_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	var got []entity.CartLine
	s.Subscribe(func(lines []entity.CartLine) { got = lines })

	require.NoError(t, s.Add(product(1, "Milk", "120", 5)))
	got[0].Quantity = 99

	line, _ := s.Line(1)
	assert.Equal(t, 1, line.Quantity)
}

func TestClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(1, "Milk", "120", 5)))
	version := s.Version()

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Greater(t, s.Version(), version)
}

func TestDeduct_KeepsUnsoldQuantities(t *testing.T) {
	s := NewStore()
	bread := product(2, "Bread", "40", 5)
	milk := product(1, "Milk", "120", 3)
	require.NoError(t, s.Add(bread))
	sold := s.Lines()
	require.NoError(t, s.Add(bread))
	require.NoError(t, s.Add(milk))

	var notified int
	s.Subscribe(func([]entity.CartLine) { notified++ })
	s.Deduct(sold)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(1), lines[1].ProductID)
	assert.Equal(t, 1, notified)
}

func TestDeduct_EverythingSoldEmptiesCart(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(product(2, "Bread", "40", 5)))

	s.Deduct(s.Lines())

	assert.Zero(t, s.Len())
}
