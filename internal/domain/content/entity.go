package content

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Entity is implemented by every collection item. WithID returns a copy of the
// item carrying id, so generic code can assign identifiers without reflection.
type Entity[T any] interface {
	EntityID() string
	WithID(id string) T
}

// Validator is implemented by items with field rules beyond a non-empty id.
type Validator interface {
	Validate() error
}

var (
	ErrMissingID   = errors.New("item id is required")
	ErrDuplicateID = errors.New("item id is not unique")
)

// NewID returns a fresh item identifier.
func NewID() string {
	return uuid.NewString()
}

// FillIDs returns a copy of items where every item without an id has a fresh one.
func FillIDs[T Entity[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if it.EntityID() == "" {
			it = it.WithID(NewID())
		}
		out[i] = it
	}
	return out
}

// CheckIDs verifies every item has a non-empty id and no id repeats.
func CheckIDs[T Entity[T]](items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		id := it.EntityID()
		if id == "" {
			return fmt.Errorf("item %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("item %d (%s): %w", i, id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return nil
}

func checkPercent(field string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %d", field, v)
	}
	return nil
}

func oneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q", field, v)
}
