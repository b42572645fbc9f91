package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/health)
	GetHealth(ctx echo.Context) error
	// (GET /api/work-orders)
	ListWorkOrders(ctx echo.Context) error
	// (POST /api/work-orders)
	CreateWorkOrder(ctx echo.Context) error
	// (GET /api/work-orders/{id})
	GetWorkOrder(ctx echo.Context, id int64) error
	// (PUT /api/work-orders/{id})
	UpdateWorkOrder(ctx echo.Context, id int64) error
	// (POST /api/work-orders/{orderId}/process/{processId}/assign)
	AssignMachines(ctx echo.Context, orderID, processID int64) error
	// (GET /api/work-orders/{orderId}/progress)
	GetProgress(ctx echo.Context, orderID int64) error
	// (GET /api/inventory/product/{productId}/process/{processId})
	GetInventory(ctx echo.Context, productID, processID int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) ListWorkOrders(ctx echo.Context) error {
	return w.Handler.ListWorkOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateWorkOrder(ctx echo.Context) error {
	return w.Handler.CreateWorkOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetWorkOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetWorkOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateWorkOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateWorkOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignMachines(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	processID, err := pathID(ctx, "processId")
	if err != nil {
		return err
	}
	return w.Handler.AssignMachines(ctx, orderID, processID)
}

func (w *ServerInterfaceWrapper) GetProgress(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetProgress(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetInventory(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return err
	}
	processID, err := pathID(ctx, "processId")
	if err != nil {
		return err
	}
	return w.Handler.GetInventory(ctx, productID, processID)
}

func pathID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, &requestError{
			status:  http.StatusBadRequest,
			kind:    KindInvalidPayload,
			message: msgInvalidPayload,
			cause:   fmt.Errorf("invalid format for parameter %s: %w", name, err),
		}
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/api/health", w.GetHealth)
	router.GET("/api/work-orders", w.ListWorkOrders)
	router.POST("/api/work-orders", w.CreateWorkOrder)
	router.GET("/api/work-orders/:id", w.GetWorkOrder)
	router.PUT("/api/work-orders/:id", w.UpdateWorkOrder)
	router.POST("/api/work-orders/:orderId/process/:processId/assign", w.AssignMachines)
	router.GET("/api/work-orders/:orderId/progress", w.GetProgress)
	router.GET("/api/inventory/product/:productId/process/:processId", w.GetInventory)
}
