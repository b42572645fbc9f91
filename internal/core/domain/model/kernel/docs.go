// Package kernel provides core domain primitives shared by the work order model.
//
// The package includes:
//   - ID: A value object for the numeric identifiers the store assigns to
//     orders, process steps, products, processes and machines
//
// Primitives are immutable and validate themselves, so an aggregate can reject
// a zero-value identifier before it reaches persistence.
package kernel
