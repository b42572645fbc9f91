package inventory

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// ErrInsufficientInventory is the sentinel behind InsufficientInventoryError.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// Key identifies a balance.
type Key struct {
	ProductID kernel.ID
	ProcessID kernel.ID
}

// NewKey validates both halves of the key.
func NewKey(productID, processID kernel.ID) (Key, error) {
	if err := errors.Join(
		wrap("productId", productID.Validate()),
		wrap("processId", processID.Validate()),
	); err != nil {
		return Key{}, err
	}
	return Key{ProductID: productID, ProcessID: processID}, nil
}

func (k Key) String() string {
	return fmt.Sprintf("product %s, process %s", k.ProductID, k.ProcessID)
}

// Record is a stored balance.
type Record struct {
	Key               Key
	AvailableQuantity int
}

// NewRecord creates a balance within [0, kernel.MaxQuantity].
func NewRecord(key Key, availableQuantity int) (Record, error) {
	if availableQuantity < 0 || availableQuantity > kernel.MaxQuantity {
		return Record{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"availableQuantity", availableQuantity, 0, kernel.MaxQuantity, errors.New(key.String()),
		)
	}
	return Record{Key: key, AvailableQuantity: availableQuantity}, nil
}

// InsufficientInventoryError reports a consumption that would take a balance
// below zero, or that targets a balance that does not exist.
type InsufficientInventoryError struct {
	Key       Key
	Requested int
}

func NewInsufficientInventoryError(key Key, requested int) *InsufficientInventoryError {
	return &InsufficientInventoryError{Key: key, Requested: requested}
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s for process %s", ErrInsufficientInventory, e.Key.ProcessID)
}

func (e *InsufficientInventoryError) Unwrap() error {
	return ErrInsufficientInventory
}

// ValidateConsumption rejects non-positive amounts; zero consumption never
// reaches the ledger.
func ValidateConsumption(amount int) error {
	if amount <= 0 || amount > kernel.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("inventoryUsed", amount, 1, kernel.MaxQuantity)
	}
	return nil
}

func wrap(param string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", param, err)
}
