package cmd

import (
	"log/slog"

	httpin "workorders/internal/adapters/in/http"
	"workorders/internal/adapters/out/metrics"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/ports"
	"workorders/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases. Committed domain events are counted
// on registry and then handed to publisher.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	registry prometheus.Registerer,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, metrics.NewEventMetrics(registry, publisher), logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	var f commands.WorkOrderUoWFactory = FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWorkOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateWorkOrderCommandHandler() commands.UpdateWorkOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateWorkOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateAssignMachinesCommandHandler() commands.AssignMachinesCommandHandler {
	var f commands.WorkOrderUoWFactory = FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignMachinesCommandHandler(f)
}

func (c *CompositionRoot) CreateSeedCatalogCommandHandler() commands.SeedCatalogCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedCatalogCommandHandler(f)
}

func (c *CompositionRoot) CreateListWorkOrdersQueryHandler() queries.ListWorkOrdersQueryHandler {
	return queries.NewListWorkOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProgressQueryHandler() queries.GetProgressQueryHandler {
	return queries.NewGetProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server over every use case.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	createHandler := c.CreateCreateWorkOrderCommandHandler()
	updateHandler := c.CreateUpdateWorkOrderCommandHandler()
	assignHandler := c.CreateAssignMachinesCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateWorkOrder: &createHandler,
		UpdateWorkOrder: &updateHandler,
		AssignMachines:  &assignHandler,
		ListWorkOrders:  c.CreateListWorkOrdersQueryHandler(),
		GetWorkOrder:    c.CreateGetWorkOrderQueryHandler(),
		GetProgress:     c.CreateGetProgressQueryHandler(),
		GetInventory:    c.CreateGetInventoryQueryHandler(),
	}, c.logger)
}

// CreateJobManager returns the background jobs for the environment. The
// keep-alive ping only runs in production and only with a target URL.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.cfg.IsProduction() || c.cfg.KeepAliveURL == "" {
		return jobs.NewJobManager()
	}
	return jobs.NewJobManager(jobs.NewKeepAliveJob(c.cfg.KeepAliveURL, c.cfg.KeepAliveSchedule, c.logger))
}

type FuncWorkOrderUoWFactory func() commands.WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
