package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Kind discriminates error responses for clients.
type Kind string

const (
	KindInvalidPayload        Kind = "invalid_payload"
	KindNotFound              Kind = "not_found"
	KindInsufficientInventory Kind = "insufficient_inventory"
	KindInternal              Kind = "internal"
)

const (
	msgInvalidPayload       = "Invalid payload"
	msgAssignmentsRequired  = "Assignments required"
	msgOrderNotFound        = "Order not found"
	msgStepNotFound         = "Process step not found"
	msgReferenceNotFound    = "Referenced record not found"
	msgInternalServerError  = "Internal server error"
	msgWorkOrderUpdated     = "Work order updated successfully"
	msgMachinesAssigned     = "Machines assigned successfully"
	msgFailedToList         = "Failed to fetch work orders"
	msgFailedToCreate       = "Failed to create work order"
	msgFailedToUpdate       = "Failed to update work order"
	msgFailedToFetch        = "Failed to fetch order"
	msgFailedToAssign       = "Failed to assign machines"
	msgFailedToFetchProcess = "Failed to fetch progress"
	msgFailedToFetchStock   = "Failed to fetch inventory"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  Kind   `json:"kind"`
}

// requestError carries the response for a failed request. The cause is only logged.
type requestError struct {
	status  int
	kind    Kind
	message string
	cause   error
}

func (e *requestError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *requestError) Unwrap() error { return e.cause }

// classify maps a use case error onto a response. internalMessage is what the
// client sees when the failure is unexpected.
func classify(err error, internalMessage string) *requestError {
	var insufficient *inventory.InsufficientInventoryError
	switch {
	case errors.As(err, &insufficient):
		return &requestError{http.StatusBadRequest, KindInsufficientInventory, capitalize(insufficient.Error()), err}
	case errors.Is(err, commands.ErrStepNotFound):
		return &requestError{http.StatusNotFound, KindNotFound, msgStepNotFound, err}
	case errors.Is(err, ports.ErrReferenceNotFound):
		return &requestError{http.StatusNotFound, KindNotFound, msgReferenceNotFound, err}
	case errors.Is(err, errs.ErrObjectNotFound):
		return &requestError{http.StatusNotFound, KindNotFound, msgOrderNotFound, err}
	case errors.Is(err, workorder.ErrAssignmentsRequired):
		return &requestError{http.StatusBadRequest, KindInvalidPayload, msgAssignmentsRequired, err}
	case errs.IsInvalidInput(err):
		return &requestError{http.StatusBadRequest, KindInvalidPayload, msgInvalidPayload, err}
	default:
		return &requestError{http.StatusInternalServerError, KindInternal, internalMessage, err}
	}
}

// ErrorHandler renders errors escaping handlers and middleware. Unexpected
// failures are logged and answered without detail.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			reqErr  *requestError
			httpErr *echo.HTTPError
		)
		switch {
		case errors.As(err, &reqErr):
		case errors.As(err, &httpErr):
			reqErr = fromHTTPError(httpErr)
		default:
			reqErr = &requestError{http.StatusInternalServerError, KindInternal, msgInternalServerError, err}
		}

		if reqErr.status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(reqErr.status)
		} else {
			writeErr = c.JSON(reqErr.status, ErrorResponse{Error: reqErr.message, Kind: reqErr.kind})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func fromHTTPError(he *echo.HTTPError) *requestError {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
		msg = s
	}

	kind := KindInvalidPayload
	switch {
	case he.Code == http.StatusNotFound:
		kind = KindNotFound
	case he.Code >= http.StatusInternalServerError:
		kind = KindInternal
	}
	return &requestError{status: he.Code, kind: kind, message: msg, cause: he}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
