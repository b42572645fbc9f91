package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
)

// CatalogProduct, CatalogProcess and CatalogMachine are the reference rows
// owned by the product/process/machine CRUD layer. The core only needs them
// to exist so that orders can point at them.
type (
	CatalogProduct struct {
		ID   kernel.ID
		Name string
	}

	CatalogProcess struct {
		ID         kernel.ID
		Name       string
		ProductIDs []kernel.ID
	}

	CatalogMachine struct {
		ID         kernel.ID
		Name       string
		ProcessIDs []kernel.ID
	}
)

// CatalogRepository upserts reference data. It is used by seeding only.
type CatalogRepository interface {
	SaveProduct(ctx context.Context, p CatalogProduct) error
	SaveProcess(ctx context.Context, p CatalogProcess) error
	SaveMachine(ctx context.Context, m CatalogMachine) error
}
