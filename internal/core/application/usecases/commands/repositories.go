// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"workorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// InventoryRepoFactory provides access to the inventory ledger within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// CatalogRepoFactory provides access to reference data within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// WorkOrderUoW manages transactions for operations that only touch orders.
	WorkOrderUoW interface {
		TxManager
		WorkOrderRepoFactory
	}

	// WorkOrderUoWFactory creates new work order unit of work instances.
	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}

	// UoW spans orders and the inventory ledger, so that consumption and the
	// step change it pays for commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders := uow.WorkOrderRepository()
	//   ledger := uow.InventoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		WorkOrderRepoFactory
		InventoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for order and inventory operations.
	UoWFactory interface {
		Create() UoW
	}

	// CatalogUoW manages transactions for seeding reference data and balances.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
		InventoryRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}
)
