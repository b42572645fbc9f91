package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho assembles the HTTP stack: recovery, request ids, metrics, access
// log and schema validation in front of the API routes, plus /metrics and
// the /swagger UI.
func NewEcho(si ServerInterface, logger *slog.Logger, registry *prometheus.Registry) (*echo.Echo, error) {
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(
		middleware.Recover(),
		RequestID(),
		NewMetrics(registry).Middleware(),
		AccessLog(logger),
		validator,
	)

	RegisterHandlers(e, si)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
