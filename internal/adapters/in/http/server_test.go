package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	e         *echo.Echo
	create    *MockCreateWorkOrderHandler
	update    *MockUpdateWorkOrderHandler
	assign    *MockAssignMachinesHandler
	list      *MockListWorkOrdersHandler
	get       *MockGetWorkOrderHandler
	progress  *MockGetProgressHandler
	inventory *MockGetInventoryHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		create:    &MockCreateWorkOrderHandler{},
		update:    &MockUpdateWorkOrderHandler{},
		assign:    &MockAssignMachinesHandler{},
		list:      &MockListWorkOrdersHandler{},
		get:       &MockGetWorkOrderHandler{},
		progress:  &MockGetProgressHandler{},
		inventory: &MockGetInventoryHandler{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(Handlers{
		CreateWorkOrder: f.create,
		UpdateWorkOrder: f.update,
		AssignMachines:  f.assign,
		ListWorkOrders:  f.list,
		GetWorkOrder:    f.get,
		GetProgress:     f.progress,
		GetInventory:    f.inventory,
	}, logger)

	e, err := NewEcho(server, logger, prometheus.NewRegistry())
	require.NoError(t, err)
	f.e = e
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func mustID(t *testing.T, v int64) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(v)
	require.NoError(t, err)
	return id
}

const createBody = `{
	"customerName": "Acme",
	"productId": 1,
	"quantity": 100,
	"dueDate": "2025-06-01",
	"processes": [{
		"processId": 7,
		"sequence": 1,
		"availableQuantity": 50,
		"completedQuantity": 0,
		"status": "Pending",
		"machines": [{"machineId": 3, "assignedQuantity": 50}]
	}]
}`

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"true"}`, rec.Body.String())
}

func TestServer_CreateWorkOrder(t *testing.T) {
	t.Run("should return 201 with the stored order", func(t *testing.T) {
		f := newFixture(t)
		var got commands.CreateWorkOrderCommand
		f.create.On("Handle", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(commands.CreateWorkOrderCommand) }).
			Return(func() *workorder.Order {
				step, _ := workorder.NewProcessStep(mustID(t, 7), 1, 50, 0, workorder.StepPending, nil)
				o, _ := workorder.NewOrder("Acme", mustID(t, 1), 100, nil, []*workorder.ProcessStep{step})
				require.NoError(t, o.AttachID(mustID(t, 42), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
				return o
			}(), nil)

		rec := f.do(http.MethodPost, "/api/work-orders", createBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body WorkOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(42), body.ID)
		assert.Equal(t, "Pending", body.Status)

		assert.Equal(t, "Acme", got.CustomerName())
		assert.Equal(t, int64(1), got.ProductID().Int64())
		require.NotNil(t, got.DueDate())
		assert.Equal(t, "2025-06-01", got.DueDate().Format(time.DateOnly))
		require.Len(t, got.Steps(), 1)
		step := got.Steps()[0]
		assert.Equal(t, int64(7), step.ProcessID.Int64())
		assert.Equal(t, workorder.StepPending, step.Status)
		require.Len(t, step.Machines, 1)
		assert.Equal(t, int64(3), step.Machines[0].MachineID.Int64())
		assert.Equal(t, 50, step.Machines[0].AssignedQuantity)
	})

	t.Run("should reject a payload missing required fields", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/work-orders", `{"productId": 1, "quantity": 5, "processes": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Invalid payload", Kind: KindInvalidPayload}, decodeError(t, rec))
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject quantities beyond the storable range", func(t *testing.T) {
		for name, body := range map[string]string{
			"order quantity":  strings.Replace(createBody, `"quantity": 100`, `"quantity": 3000000000`, 1),
			"released":        strings.Replace(createBody, `"availableQuantity": 50`, `"availableQuantity": 2147483648`, 1),
			"machine":         strings.Replace(createBody, `"assignedQuantity": 50`, `"assignedQuantity": 2147483648`, 1),
			"sequence zero":   strings.Replace(createBody, `"sequence": 1`, `"sequence": 0`, 1),
			"sequence beyond": strings.Replace(createBody, `"sequence": 1`, `"sequence": 2147483648`, 1),
		} {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t)

				rec := f.do(http.MethodPost, "/api/work-orders", body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, ErrorResponse{Error: "Invalid payload", Kind: KindInvalidPayload}, decodeError(t, rec))
				f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("should reject unknown fields", func(t *testing.T) {
		f := newFixture(t)
		body := strings.Replace(createBody, `"quantity": 100,`, `"quantity": 100, "priority": "high",`, 1)

		rec := f.do(http.MethodPost, "/api/work-orders", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map unknown references to 404", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundErrorWithCause("processId", 7, ports.ErrReferenceNotFound))

		rec := f.do(http.MethodPost, "/api/work-orders", createBody)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, KindNotFound, decodeError(t, rec).Kind)
	})

	t.Run("should hide internal failures", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset by peer"))

		rec := f.do(http.MethodPost, "/api/work-orders", createBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Failed to create work order", Kind: KindInternal}, decodeError(t, rec))
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestServer_UpdateWorkOrder(t *testing.T) {
	t.Run("should pass inventory use and keep absent machines nil", func(t *testing.T) {
		f := newFixture(t)
		var got commands.UpdateWorkOrderCommand
		f.update.On("Handle", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(commands.UpdateWorkOrderCommand) }).
			Return(nil)

		rec := f.do(http.MethodPut, "/api/work-orders/11", `{
			"quantity": 120,
			"processes": [
				{"processId": 7, "availableQuantity": 20, "inventoryUsed": 20},
				{"processId": 8, "status": "Assigned", "machines": []}
			]
		}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"message":"Work order updated successfully"}`, rec.Body.String())

		assert.Equal(t, int64(11), got.OrderID().Int64())
		require.NotNil(t, got.Details().Quantity)
		assert.Equal(t, 120, *got.Details().Quantity)
		assert.Nil(t, got.Details().CustomerName)
		require.Len(t, got.Steps(), 2)

		cutting := got.Steps()[0]
		assert.Equal(t, 20, cutting.InventoryUsed)
		require.NotNil(t, cutting.AvailableQuantity)
		assert.Equal(t, 20, *cutting.AvailableQuantity)
		assert.Nil(t, cutting.Status)
		assert.Nil(t, cutting.Machines)

		welding := got.Steps()[1]
		require.NotNil(t, welding.Status)
		assert.Equal(t, workorder.StepAssigned, *welding.Status)
		assert.NotNil(t, welding.Machines)
		assert.Empty(t, welding.Machines)
	})

	t.Run("should report insufficient inventory", func(t *testing.T) {
		f := newFixture(t)
		key, err := inventory.NewKey(mustID(t, 1), mustID(t, 7))
		require.NoError(t, err)
		f.update.On("Handle", mock.Anything, mock.Anything).
			Return(inventory.NewInsufficientInventoryError(key, 25))

		rec := f.do(http.MethodPut, "/api/work-orders/11", `{"processes": [{"processId": 7, "inventoryUsed": 25}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrorResponse{
			Error: "Insufficient inventory for process 7",
			Kind:  KindInsufficientInventory,
		}, decodeError(t, rec))
	})

	t.Run("should return 404 for a missing order", func(t *testing.T) {
		f := newFixture(t)
		f.update.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("orderId", 99))

		rec := f.do(http.MethodPut, "/api/work-orders/99", `{"processes": [{"processId": 7}]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decodeError(t, rec).Error)
	})

	t.Run("should reject an empty process list", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/work-orders/11", `{"processes": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an inventory use beyond the storable range", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/work-orders/11",
			`{"quantity": 3000000000, "processes": [{"processId": 7, "inventoryUsed": 2147483648}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, KindInvalidPayload, decodeError(t, rec).Kind)
		f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map a store range error to 400", func(t *testing.T) {
		f := newFixture(t)
		f.update.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("value out of range"))).Once()

		rec := f.do(http.MethodPut, "/api/work-orders/11", `{"processes": [{"processId": 7, "inventoryUsed": 5}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, KindInvalidPayload, decodeError(t, rec).Kind)
	})

	t.Run("should reject a negative inventory use", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/work-orders/11", `{"processes": [{"processId": 7, "inventoryUsed": -1}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_GetWorkOrder(t *testing.T) {
	t.Run("should return steps with nested machines", func(t *testing.T) {
		f := newFixture(t)
		f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetWorkOrderQuery) bool {
			return q.OrderID().Int64() == 11
		})).Return(queries.WorkOrderDetail{
			WorkOrderSummary: queries.WorkOrderSummary{
				ID:           mustID(t, 11),
				CustomerName: "Acme",
				ProductID:    mustID(t, 1),
				Quantity:     100,
				Status:       "Pending",
			},
			Processes: []queries.ProcessStepView{{
				ProcessID:         mustID(t, 7),
				ProcessName:       "Cutting",
				AvailableQuantity: 50,
				Status:            "Assigned",
				Sequence:          1,
				Machines: []queries.MachineView{{
					MachineID:        mustID(t, 3),
					MachineName:      "Laser",
					AssignedQuantity: 50,
				}},
			}},
		}, nil)

		rec := f.do(http.MethodGet, "/api/work-orders/11", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body WorkOrderDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(11), body.ID)
		assert.Nil(t, body.DueDate)
		require.Len(t, body.Processes, 1)
		assert.Equal(t, "Cutting", body.Processes[0].ProcessName)
		require.Len(t, body.Processes[0].Machines, 1)
		assert.Equal(t, MachineResponse{MachineID: 3, MachineName: "Laser", AssignedQuantity: 50}, body.Processes[0].Machines[0])
	})

	t.Run("should return 404 when the order does not exist", func(t *testing.T) {
		f := newFixture(t)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.WorkOrderDetail{}, errs.NewObjectNotFoundError("orderId", 404))

		rec := f.do(http.MethodGet, "/api/work-orders/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Order not found", Kind: KindNotFound}, decodeError(t, rec))
	})

	t.Run("should reject a non-numeric id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/work-orders/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, KindInvalidPayload, decodeError(t, rec).Kind)
	})
}

func TestServer_ListWorkOrders(t *testing.T) {
	t.Run("should return an empty array", func(t *testing.T) {
		f := newFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]queries.WorkOrderSummary{}, nil)

		rec := f.do(http.MethodGet, "/api/work-orders", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should hide the database error", func(t *testing.T) {
		f := newFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("relation orders does not exist"))

		rec := f.do(http.MethodGet, "/api/work-orders", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Failed to fetch work orders", Kind: KindInternal}, decodeError(t, rec))
	})
}

func TestServer_AssignMachines(t *testing.T) {
	const target = "/api/work-orders/11/process/7/assign"

	t.Run("should assign machines", func(t *testing.T) {
		f := newFixture(t)
		f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignMachinesCommand) bool {
			return cmd.OrderID().Int64() == 11 && cmd.ProcessID().Int64() == 7 && len(cmd.Assignments()) == 2
		})).Return(nil)

		rec := f.do(http.MethodPost, target,
			`{"assignments": [{"machineId": 3, "assignedQuantity": 25}, {"machineId": 4, "assignedQuantity": 25}]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Machines assigned successfully"}`, rec.Body.String())
		f.assign.AssertExpectations(t)
	})

	t.Run("should require at least one assignment", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, target, `{"assignments": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Assignments required", Kind: KindInvalidPayload}, decodeError(t, rec))
		f.assign.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should return 404 when the step does not exist", func(t *testing.T) {
		f := newFixture(t)
		f.assign.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundErrorWithCause("processId", 7, commands.ErrStepNotFound))

		rec := f.do(http.MethodPost, target, `{"assignments": [{"machineId": 3, "assignedQuantity": 5}]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "Process step not found", Kind: KindNotFound}, decodeError(t, rec))
	})
}

func TestServer_GetProgress(t *testing.T) {
	f := newFixture(t)
	name := "Laser"
	assigned, done := 30, 0
	f.progress.On("Handle", mock.Anything, mock.Anything).Return([]queries.ProgressRow{
		{ProcessID: mustID(t, 8), ProcessName: "Welding", Sequence: 1, Status: "Pending"},
		{
			ProcessID: mustID(t, 7), ProcessName: "Cutting", Sequence: 2, AvailableQuantity: 50, Status: "Assigned",
			MachineID: func() *kernel.ID { id := mustID(t, 3); return &id }(), MachineName: &name,
			AssignedQuantity: &assigned, MachineCompletedQuantity: &done,
		},
	}, nil)

	rec := f.do(http.MethodGet, "/api/work-orders/11/progress", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Welding", rows[0]["processName"])
	assert.Nil(t, rows[0]["machineId"])
	assert.Nil(t, rows[0]["machineName"])
	assert.Nil(t, rows[0]["assignedQuantity"])
	assert.InDelta(t, 3, rows[1]["machineId"], 0)
	assert.Equal(t, "Laser", rows[1]["machineName"])
}

func TestServer_GetInventory(t *testing.T) {
	f := newFixture(t)
	f.inventory.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetInventoryQuery) bool {
		return q.Key().ProductID.Int64() == 1 && q.Key().ProcessID.Int64() == 9
	})).Return(queries.InventoryBalance{AvailableQuantity: 0}, nil)

	rec := f.do(http.MethodGet, "/api/inventory/product/1/process/9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"availableQuantity":0}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/api/health", "")

	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `workorders_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
