package main

import (
	"errors"
	"fmt"
	"io"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/ports"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML seed file: reference data plus starting inventory.
type Fixture struct {
	// DefaultInventory is the balance given to every product/process pair
	// that has no explicit inventory entry. Zero disables it.
	DefaultInventory int              `yaml:"defaultInventory"`
	Products         []ProductEntry   `yaml:"products"`
	Processes        []ProcessEntry   `yaml:"processes"`
	Machines         []MachineEntry   `yaml:"machines"`
	Inventory        []InventoryEntry `yaml:"inventory"`
}

type ProductEntry struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type ProcessEntry struct {
	ID       int64   `yaml:"id"`
	Name     string  `yaml:"name"`
	Products []int64 `yaml:"products"`
}

type MachineEntry struct {
	ID        int64   `yaml:"id"`
	Name      string  `yaml:"name"`
	Processes []int64 `yaml:"processes"`
}

type InventoryEntry struct {
	Product  int64 `yaml:"product"`
	Process  int64 `yaml:"process"`
	Quantity int   `yaml:"quantity"`
}

// DecodeFixture reads a fixture, rejecting unknown keys.
func DecodeFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if f.DefaultInventory < 0 {
		return Fixture{}, errors.New("defaultInventory must not be negative")
	}
	return f, nil
}

// Command converts the fixture into a seed command.
func (f Fixture) Command() (commands.SeedCatalogCommand, error) {
	products := make([]ports.CatalogProduct, 0, len(f.Products))
	for _, p := range f.Products {
		id, err := kernel.NewID(p.ID)
		if err != nil {
			return commands.SeedCatalogCommand{}, fmt.Errorf("product %d: %w", p.ID, err)
		}
		products = append(products, ports.CatalogProduct{ID: id, Name: p.Name})
	}

	processes := make([]ports.CatalogProcess, 0, len(f.Processes))
	for _, p := range f.Processes {
		id, err := kernel.NewID(p.ID)
		if err != nil {
			return commands.SeedCatalogCommand{}, fmt.Errorf("process %d: %w", p.ID, err)
		}
		productIDs, err := toIDs(p.Products)
		if err != nil {
			return commands.SeedCatalogCommand{}, fmt.Errorf("process %d: %w", p.ID, err)
		}
		processes = append(processes, ports.CatalogProcess{ID: id, Name: p.Name, ProductIDs: productIDs})
	}

	machines := make([]ports.CatalogMachine, 0, len(f.Machines))
	for _, m := range f.Machines {
		id, err := kernel.NewID(m.ID)
		if err != nil {
			return commands.SeedCatalogCommand{}, fmt.Errorf("machine %d: %w", m.ID, err)
		}
		processIDs, err := toIDs(m.Processes)
		if err != nil {
			return commands.SeedCatalogCommand{}, fmt.Errorf("machine %d: %w", m.ID, err)
		}
		machines = append(machines, ports.CatalogMachine{ID: id, Name: m.Name, ProcessIDs: processIDs})
	}

	balances, err := f.balances(processes)
	if err != nil {
		return commands.SeedCatalogCommand{}, err
	}

	return commands.NewSeedCatalogCommand(products, processes, machines, balances)
}

// balances lists explicit entries first, then the default balance for every
// mapped product/process pair without one.
func (f Fixture) balances(processes []ports.CatalogProcess) ([]inventory.Record, error) {
	records := make([]inventory.Record, 0, len(f.Inventory))
	explicit := make(map[inventory.Key]bool, len(f.Inventory))

	for _, e := range f.Inventory {
		key, err := newKey(e.Product, e.Process)
		if err != nil {
			return nil, err
		}
		record, err := inventory.NewRecord(key, e.Quantity)
		if err != nil {
			return nil, fmt.Errorf("inventory for %s: %w", key, err)
		}
		explicit[key] = true
		records = append(records, record)
	}

	if f.DefaultInventory == 0 {
		return records, nil
	}
	for _, p := range processes {
		for _, productID := range p.ProductIDs {
			key, err := inventory.NewKey(productID, p.ID)
			if err != nil {
				return nil, err
			}
			if explicit[key] {
				continue
			}
			record, err := inventory.NewRecord(key, f.DefaultInventory)
			if err != nil {
				return nil, err
			}
			explicit[key] = true
			records = append(records, record)
		}
	}
	return records, nil
}

func newKey(product, process int64) (inventory.Key, error) {
	productID, err := kernel.NewID(product)
	if err != nil {
		return inventory.Key{}, fmt.Errorf("inventory product %d: %w", product, err)
	}
	processID, err := kernel.NewID(process)
	if err != nil {
		return inventory.Key{}, fmt.Errorf("inventory process %d: %w", process, err)
	}
	return inventory.NewKey(productID, processID)
}

func toIDs(values []int64) ([]kernel.ID, error) {
	ids := make([]kernel.ID, 0, len(values))
	for _, v := range values {
		id, err := kernel.NewID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
