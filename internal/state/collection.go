package state

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// keyed is implemented by every entity stored in a collection.
type keyed interface {
	Key() string
}

// indexOf returns the position of the first item with the given ID, or -1.
func indexOf[T keyed](items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return it.Key() == id })
}

// find returns the first item with the given ID.
func find[T keyed](items []T, id string) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// appendItem returns a new slice with item at the end. The input is not modified.
func appendItem[T keyed](items []T, item T) ([]T, error) {
	if indexOf(items, item.Key()) >= 0 {
		return nil, fmt.Errorf("adding %q: %w", item.Key(), ErrDuplicateID)
	}
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	return append(next, item), nil
}

// replaceItem returns a new slice where the first item with the given ID is
// replaced by apply(item).
func replaceItem[T keyed](items []T, id string, apply func(T) T) ([]T, error) {
	i := indexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("updating %q: %w", id, ErrNotFound)
	}
	next := slices.Clone(items)
	next[i] = apply(items[i])
	return next, nil
}

// removeItems returns a new slice without any item carrying the given ID.
func removeItems[T keyed](items []T, id string) ([]T, error) {
	if indexOf(items, id) < 0 {
		return nil, fmt.Errorf("deleting %q: %w", id, ErrNotFound)
	}
	next := make([]T, 0, len(items)-1)
	for _, it := range items {
		if it.Key() != id {
			next = append(next, it)
		}
	}
	return next, nil
}

// newID generates an identifier for entities added without one.
func newID() string {
	return uuid.NewString()
}
