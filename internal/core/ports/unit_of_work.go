package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then hands the events of
	// every tracked aggregate to the EventPublisher.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops tracked aggregates.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// WorkOrderRepository returns a repository bound to the current transaction.
	WorkOrderRepository() WorkOrderRepository

	// InventoryRepository returns a ledger bound to the current transaction.
	InventoryRepository() InventoryRepository

	// CatalogRepository returns a reference-data repository bound to the current transaction.
	CatalogRepository() CatalogRepository
}
