// Package cart holds the terminal's in-memory cart and the provisional
// totals shown next to it.
package cart

import (
	"slices"

	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
)

// Listener receives the post-mutation snapshot. It is called synchronously,
// once per successful mutation.
type Listener func(lines []entity.CartLine)

// Store is an ordered list of cart lines with at most one line per product.
// It is not safe for concurrent use; its owner serializes access.
type Store struct {
	lines     []entity.CartLine
	version   uint64
	listeners []Listener
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Add puts one unit of p in the cart, creating the line on first add with
// p.Quantity as its stock ceiling.
func (s *Store) Add(p entity.Product) error {
	if p.Quantity <= 0 {
		return ErrOutOfStock
	}

	if i := s.indexOf(p.ID); i >= 0 {
		if s.lines[i].Quantity >= p.Quantity {
			return ErrStockCeiling
		}
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, entity.CartLine{
			ProductID:   p.ID,
			Name:        p.Name,
			UnitPrice:   p.Price,
			Quantity:    1,
			MaxQuantity: p.Quantity,
		})
	}

	s.changed()
	return nil
}

// Remove deletes the line for productID. It reports whether a line was removed.
func (s *Store) Remove(productID int64) bool {
	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.changed()
	return true
}

// AdjustQuantity adds delta to the line's quantity. Dropping to zero or below
// removes the line; going past the stock ceiling is rejected.
func (s *Store) AdjustQuantity(productID int64, delta int) error {
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	newQty := s.lines[i].Quantity + delta
	switch {
	case newQty <= 0:
		s.Remove(productID)
		return nil
	case newQty > s.lines[i].MaxQuantity:
		return ErrExceedsStock
	}

	s.lines[i].Quantity = newQty
	s.changed()
	return nil
}

func (s *Store) Clear() {
	s.lines = nil
	s.changed()
}

// Deduct takes the quantities in sold out of the cart, dropping lines that
// reach zero. Lines added or grown after sold was taken keep the difference.
// Listeners are notified once.
func (s *Store) Deduct(sold []entity.CartLine) {
	for _, l := range sold {
		i := s.indexOf(l.ProductID)
		if i < 0 {
			continue
		}
		s.lines[i].Quantity -= l.Quantity
	}
	s.lines = slices.DeleteFunc(s.lines, func(l entity.CartLine) bool {
		return l.Quantity <= 0
	})
	if len(s.lines) == 0 {
		s.lines = nil
	}
	s.changed()
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []entity.CartLine {
	return slices.Clone(s.lines)
}

func (s *Store) Line(productID int64) (entity.CartLine, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i], true
	}
	return entity.CartLine{}, false
}

func (s *Store) Len() int {
	return len(s.lines)
}

// Version increases on every mutation.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) indexOf(productID int64) int {
	return slices.IndexFunc(s.lines, func(l entity.CartLine) bool {
		return l.ProductID == productID
	})
}

func (s *Store) changed() {
	s.version++
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Lines()
	for _, l := range s.listeners {
		l(snapshot)
	}
}
