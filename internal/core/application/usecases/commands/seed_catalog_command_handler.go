package commands

import (
	"context"
)

// SeedReport counts what a seeding run wrote.
type SeedReport struct {
	Products         int
	Processes        int
	Machines         int
	InventoryCreated int
	InventorySkipped int
}

// SeedCatalogCommandHandler upserts the catalog and creates inventory
// balances that do not exist yet. Existing balances are never overwritten,
// so seeding can be re-run safely against a live ledger.
type SeedCatalogCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSeedCatalogCommandHandler(uowFactory CatalogUoWFactory) SeedCatalogCommandHandler {
	return SeedCatalogCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SeedCatalogCommandHandler) Handle(ctx context.Context, cmd SeedCatalogCommand) (SeedReport, error) {
	var report SeedReport
	if err := cmd.Validate(); err != nil {
		return report, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return report, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.CatalogRepository()
	for _, p := range cmd.Products() {
		if err := catalog.SaveProduct(ctx, p); err != nil {
			return SeedReport{}, err
		}
		report.Products++
	}
	for _, p := range cmd.Processes() {
		if err := catalog.SaveProcess(ctx, p); err != nil {
			return SeedReport{}, err
		}
		report.Processes++
	}
	for _, m := range cmd.Machines() {
		if err := catalog.SaveMachine(ctx, m); err != nil {
			return SeedReport{}, err
		}
		report.Machines++
	}

	ledger := uow.InventoryRepository()
	for _, r := range cmd.Inventory() {
		created, err := ledger.AddIfAbsent(ctx, r)
		if err != nil {
			return SeedReport{}, err
		}
		if created {
			report.InventoryCreated++
		} else {
			report.InventorySkipped++
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return SeedReport{}, err
	}
	return report, nil
}
