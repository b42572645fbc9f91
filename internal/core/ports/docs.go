// Package ports defines the contracts between the work order core and its
// infrastructure: repositories bound to a transaction, the unit of work that
// owns that transaction, and the publisher that receives domain events once
// the transaction has committed.
package ports
