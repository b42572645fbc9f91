package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on.
type (
	CreateWorkOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateWorkOrderCommand) (*workorder.Order, error)
	}
	UpdateWorkOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateWorkOrderCommand) error
	}
	AssignMachinesHandler interface {
		Handle(ctx context.Context, cmd commands.AssignMachinesCommand) error
	}
	ListWorkOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListWorkOrdersQuery) ([]queries.WorkOrderSummary, error)
	}
	GetWorkOrderHandler interface {
		Handle(ctx context.Context, query queries.GetWorkOrderQuery) (queries.WorkOrderDetail, error)
	}
	GetProgressHandler interface {
		Handle(ctx context.Context, query queries.GetProgressQuery) ([]queries.ProgressRow, error)
	}
	GetInventoryHandler interface {
		Handle(ctx context.Context, query queries.GetInventoryQuery) (queries.InventoryBalance, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateWorkOrder CreateWorkOrderHandler
	UpdateWorkOrder UpdateWorkOrderHandler
	AssignMachines  AssignMachinesHandler
	ListWorkOrders  ListWorkOrdersHandler
	GetWorkOrder    GetWorkOrderHandler
	GetProgress     GetProgressHandler
	GetInventory    GetInventoryHandler
}

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http-server"),
	}
}

// GetHealth handles GET /api/health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "true"})
}

// ListWorkOrders handles GET /api/work-orders - retrieves all orders without steps.
func (s *Server) ListWorkOrders(ctx echo.Context) error {
	orders, err := s.handlers.ListWorkOrders.Handle(ctx.Request().Context(), queries.NewListWorkOrdersQuery())
	if err != nil {
		return s.fail(ctx, err, msgFailedToList)
	}

	response := make([]WorkOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = summaryResponse(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateWorkOrder handles POST /api/work-orders - opens an order with its steps.
func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	var req NewWorkOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, invalidPayload(err), msgFailedToCreate)
	}

	cmd, err := toCreateCommand(req)
	if err != nil {
		return s.fail(ctx, err, msgFailedToCreate)
	}

	order, err := s.handlers.CreateWorkOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, msgFailedToCreate)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(order))
}

// UpdateWorkOrder handles PUT /api/work-orders/{id} - reports progress on an order.
func (s *Server) UpdateWorkOrder(ctx echo.Context, id int64) error {
	var req WorkOrderUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, invalidPayload(err), msgFailedToUpdate)
	}

	cmd, err := toUpdateCommand(id, req)
	if err != nil {
		return s.fail(ctx, err, msgFailedToUpdate)
	}

	if err = s.handlers.UpdateWorkOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, msgFailedToUpdate)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: msgWorkOrderUpdated})
}

// GetWorkOrder handles GET /api/work-orders/{id} - returns the order with steps and machines.
func (s *Server) GetWorkOrder(ctx echo.Context, id int64) error {
	orderID, err := kernel.NewID(id)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetch)
	}
	query, err := queries.NewGetWorkOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetch)
	}

	detail, err := s.handlers.GetWorkOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetch)
	}

	return ctx.JSON(http.StatusOK, detailResponse(detail))
}

// AssignMachines handles POST /api/work-orders/{orderId}/process/{processId}/assign.
func (s *Server) AssignMachines(ctx echo.Context, orderID, processID int64) error {
	var req MachineAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, invalidPayload(err), msgFailedToAssign)
	}

	cmd, err := toAssignCommand(orderID, processID, req)
	if err != nil {
		return s.fail(ctx, err, msgFailedToAssign)
	}

	if err = s.handlers.AssignMachines.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, msgFailedToAssign)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: msgMachinesAssigned})
}

// GetProgress handles GET /api/work-orders/{orderId}/progress - one row per step and machine.
func (s *Server) GetProgress(ctx echo.Context, orderID int64) error {
	id, err := kernel.NewID(orderID)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetchProcess)
	}
	query, err := queries.NewGetProgressQuery(id)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetchProcess)
	}

	rows, err := s.handlers.GetProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetchProcess)
	}

	response := make([]ProgressRowResponse, len(rows))
	for i, r := range rows {
		response[i] = progressResponse(r)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetInventory handles GET /api/inventory/product/{productId}/process/{processId}.
func (s *Server) GetInventory(ctx echo.Context, productID, processID int64) error {
	product, productErr := kernel.NewID(productID)
	if productErr != nil {
		return s.fail(ctx, productErr, msgFailedToFetchStock)
	}
	process, processErr := kernel.NewID(processID)
	if processErr != nil {
		return s.fail(ctx, processErr, msgFailedToFetchStock)
	}
	query, err := queries.NewGetInventoryQuery(product, process)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetchStock)
	}

	balance, err := s.handlers.GetInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, msgFailedToFetchStock)
	}

	return ctx.JSON(http.StatusOK, InventoryResponse{AvailableQuantity: balance.AvailableQuantity})
}

// fail writes the error response. Internal failures are logged with their cause.
func (s *Server) fail(ctx echo.Context, err error, internalMessage string) error {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		reqErr = classify(err, internalMessage)
	}

	if reqErr.status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), internalMessage,
			"path", ctx.Path(),
			"request_id", ctx.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	} else {
		s.logger.DebugContext(ctx.Request().Context(), "request rejected",
			"path", ctx.Path(),
			"kind", reqErr.kind,
			"error", err,
		)
	}

	return ctx.JSON(reqErr.status, ErrorResponse{Error: reqErr.message, Kind: reqErr.kind})
}
