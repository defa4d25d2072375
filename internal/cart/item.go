package cart

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when an operation names an id the cart does not hold.
var ErrItemNotFound = errors.New("cart: item not found")

// Item is one product entry in the cart. The json names match the blob the
// mobile client wrote, so existing carts load unchanged.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Product is an Item without a quantity; it is what gets added to the cart.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

// Subtotal is price times quantity.
func (i Item) Subtotal() float64 { return i.Price * float64(i.Quantity) }

// Totals summarises a cart for display.
type Totals struct {
	Count  int     // sum of quantities
	Amount float64 // sum of subtotals
}

// Summarize computes the totals of items.
func Summarize(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t.Count += it.Quantity
		t.Amount += it.Subtotal()
	}
	return t
}

// The functions below never modify their input; each returns a new slice.

// Add appends p with quantity 1, or increments it when the id is already present.
func Add(items []Item, p Product) []Item {
	if findItemIndex(items, p.ID) >= 0 {
		next, _ := Increment(items, p.ID)
		return next
	}
	next := make([]Item, len(items), len(items)+1)
	copy(next, items)
	return append(next, Item{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	})
}

// Increment raises the quantity of id by one.
func Increment(items []Item, id string) ([]Item, error) {
	idx := findItemIndex(items, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	next := cloneItems(items)
	next[idx].Quantity++
	return next, nil
}

// Decrement lowers the quantity of id by one, removing the item at zero.
func Decrement(items []Item, id string) ([]Item, error) {
	idx := findItemIndex(items, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	if items[idx].Quantity <= 1 {
		return removeIndex(items, idx), nil
	}
	next := cloneItems(items)
	next[idx].Quantity--
	return next, nil
}

// Remove drops id whatever its quantity.
func Remove(items []Item, id string) ([]Item, error) {
	idx := findItemIndex(items, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	return removeIndex(items, idx), nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrItemNotFound, id)
}

func findItemIndex(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []Item, idx int) []Item {
	next := make([]Item, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...)
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
