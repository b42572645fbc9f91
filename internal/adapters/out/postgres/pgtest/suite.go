// Package pgtest runs integration suites against a throwaway PostgreSQL
// container with the full schema migrated and a small reference catalog.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/postgres/catalogrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Catalog ids created by SetupTest.
const (
	ProductID int64 = 1
	CuttingID int64 = 7
	WeldingID int64 = 8
	PaintID   int64 = 9
	LaserID   int64 = 3
	PressID   int64 = 4
	RobotID   int64 = 5
)

// Suite is embedded by integration suites that need a database.
type Suite struct {
	suite.Suite
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

func (s *Suite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.Container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.DB = db

	s.Require().NoError(postgres_adapter.Migrate(db))
}

func (s *Suite) TearDownSuite() {
	if s.Container != nil {
		s.Require().NoError(s.Container.Terminate(context.Background()))
	}
}

// SetupTest empties every table and reloads the reference catalog.
func (s *Suite) SetupTest() {
	s.Require().NoError(s.DB.Exec(`TRUNCATE TABLE
		order_process_machines, order_processes, orders, product_process_inventory,
		machine_processes, product_processes, machines, processes, products
		RESTART IDENTITY CASCADE`).Error)

	ctx := context.Background()
	repo := catalogrepo.NewGormCatalogRepository(s.DB)
	s.Require().NoError(repo.SaveProduct(ctx, ports.CatalogProduct{ID: s.ID(ProductID), Name: "Widget"}))
	for id, name := range map[int64]string{CuttingID: "Cutting", WeldingID: "Welding", PaintID: "Painting"} {
		s.Require().NoError(repo.SaveProcess(ctx, ports.CatalogProcess{
			ID: s.ID(id), Name: name, ProductIDs: []kernel.ID{s.ID(ProductID)},
		}))
	}
	for id, name := range map[int64]string{LaserID: "Laser", PressID: "Press", RobotID: "Robot"} {
		s.Require().NoError(repo.SaveMachine(ctx, ports.CatalogMachine{
			ID: s.ID(id), Name: name, ProcessIDs: []kernel.ID{s.ID(CuttingID), s.ID(WeldingID)},
		}))
	}
}

// ID builds a kernel.ID or fails the test.
func (s *Suite) ID(v int64) kernel.ID {
	id, err := kernel.NewID(v)
	s.Require().NoError(err)
	return id
}

// SetInventory writes a balance directly.
func (s *Suite) SetInventory(productID, processID int64, qty int) {
	s.Require().NoError(s.DB.Exec(`
		INSERT INTO product_process_inventory (product_id, process_id, available_quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (product_id, process_id) DO UPDATE SET available_quantity = EXCLUDED.available_quantity`,
		productID, processID, qty).Error)
}

// Inventory reads a balance directly, -1 when absent.
func (s *Suite) Inventory(productID, processID int64) int {
	qty := -1
	s.Require().NoError(s.DB.Raw(
		"SELECT COALESCE((SELECT available_quantity FROM product_process_inventory WHERE product_id = ? AND process_id = ?), -1)",
		productID, processID,
	).Scan(&qty).Error)
	return qty
}
