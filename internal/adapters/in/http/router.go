// Package http exposes the ordering use cases over a JSON API served by echo.
//
// Requests under /api/v1 are validated against the embedded OpenAPI
// document, then authenticated from the gateway identity headers, then
// checked for the route's permission.
package http

import (
	"log/slog"
	"net/http"

	"foodorder/internal/core/domain/model/user"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, health check and docs.
func NewRouter(server *Server, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	logger = logger.With("component", "http")

	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validate, authenticate)
	RegisterHandlers(api, server)

	return e, nil
}

// RegisterHandlers mounts the order routes with their permission checks.
func RegisterHandlers(router *echo.Group, s *Server) {
	router.POST("/orders", s.PlaceOrder, requirePermission(user.CanPlaceOrder))
	router.POST("/orders/schedule", s.ScheduleOrder, requirePermission(user.CanScheduleOrder))
	router.GET("/orders", func(ctx echo.Context) error {
		params, err := bindSearchOrdersParams(ctx)
		if err != nil {
			return err
		}
		return s.SearchOrders(ctx, params)
	}, requirePermission(user.CanSearchOrder))
	router.GET("/orders/capacity", s.GetCapacity, requirePermission(user.CanPlaceOrder))
	router.GET("/orders/:id", func(ctx echo.Context) error {
		id, err := bindOrderID(ctx)
		if err != nil {
			return err
		}
		return s.TrackOrder(ctx, id)
	}, requirePermission(user.CanTrackOrder))
	router.PUT("/orders/:id/cancel", func(ctx echo.Context) error {
		id, err := bindOrderID(ctx)
		if err != nil {
			return err
		}
		return s.CancelOrder(ctx, id)
	}, requirePermission(user.CanCancelOrder))
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request handled", attrs...)
			return nil
		},
	}
}
