package commands

import (
	"errors"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/guard"
)

var ErrSeedCatalogCommandIsNotConstructed = errors.New(
	"SeedCatalogCommand must be created via NewSeedCatalogCommand constructor",
)

// SeedCatalogCommand loads reference data and opening inventory balances.
type SeedCatalogCommand struct { //nolint:recvcheck //using for validation
	products  []ports.CatalogProduct
	processes []ports.CatalogProcess
	machines  []ports.CatalogMachine
	inventory []inventory.Record

	guard guard.ConstructorGuard
}

func NewSeedCatalogCommand(
	products []ports.CatalogProduct,
	processes []ports.CatalogProcess,
	machines []ports.CatalogMachine,
	balances []inventory.Record,
) (SeedCatalogCommand, error) {
	cmd := SeedCatalogCommand{
		products:  products,
		processes: processes,
		machines:  machines,
		inventory: balances,
		guard:     guard.NewConstructorGuard(),
	}

	var err error
	for _, p := range products {
		err = errors.Join(err, p.ID.Validate())
	}
	for _, p := range processes {
		err = errors.Join(err, p.ID.Validate())
	}
	for _, m := range machines {
		err = errors.Join(err, m.ID.Validate())
	}
	if err != nil {
		return SeedCatalogCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedCatalogCommand) Validate() error {
	return c.guard.Validate(ErrSeedCatalogCommandIsNotConstructed)
}

func (c SeedCatalogCommand) Products() []ports.CatalogProduct { return c.products }

func (c SeedCatalogCommand) Processes() []ports.CatalogProcess { return c.processes }

func (c SeedCatalogCommand) Machines() []ports.CatalogMachine { return c.machines }

func (c SeedCatalogCommand) Inventory() []inventory.Record { return c.inventory }
