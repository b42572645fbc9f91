// Package inventory models the per (product, process) balance that process
// steps draw down when they report finished quantity.
//
// Balances never go negative. The only way to lower one is a checked
// consumption that fails with ErrInsufficientInventory when the requested
// amount exceeds what is available; the check and the decrement happen as a
// single operation in the store.
package inventory
