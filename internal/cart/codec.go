package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptBlob is returned when the persisted cart is not a valid item list.
var ErrCorruptBlob = errors.New("cart: persisted cart is corrupt")

func encodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal cart failed: %w", err)
	}
	return string(data), nil
}

// decodeItems parses a stored blob. Entries with a non-positive quantity are
// dropped and repeated ids are merged, so the result always holds the cart
// invariants; dropped reports how many entries were touched.
func decodeItems(blob string) (items []Item, dropped int, err error) {
	var raw []Item
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	items = make([]Item, 0, len(raw))
	for _, it := range raw {
		if it.Quantity <= 0 {
			dropped++
			continue
		}
		if idx := findItemIndex(items, it.ID); idx >= 0 {
			items[idx].Quantity += it.Quantity
			dropped++
			continue
		}
		items = append(items, it)
	}
	return items, dropped, nil
}
