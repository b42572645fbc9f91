package kernel

import (
	"math"
	"strconv"

	"workorders/internal/pkg/errs"
)

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or ParseID")

// ID is a positive numeric identifier assigned by the store.
//
// The zero value is invalid. It stands for "not yet persisted" on freshly
// built aggregates and is rejected by Validate everywhere else.
//
// Example:
//
//	orderID, err := kernel.NewID(42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(orderID) // 42
type ID struct {
	value int64
}

// NewID builds an ID from a positive integer.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsOutOfRangeError("id", value, 1, int64(math.MaxInt64))
	}
	return ID{value: value}, nil
}

// ParseID builds an ID from its decimal string form, as it appears in URL paths.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(v)
}

// Int64 returns the raw value for persistence and transport.
func (id ID) Int64() int64 {
	return id.value
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return strconv.FormatInt(id.value, 10)
}

// IsZero reports whether the ID has not been assigned yet.
func (id ID) IsZero() bool {
	return id.value == 0
}

// IsEqual compares two IDs by value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
