package http

import (
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server handles the order API requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler    commands.PlaceOrderCommandHandler
	scheduleOrderHandler commands.ScheduleOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	// Query handlers
	trackOrderHandler   queries.TrackOrderQueryHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler
	getCapacityHandler  queries.GetCapacityQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	scheduleOrderHandler commands.ScheduleOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	getCapacityHandler queries.GetCapacityQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:    placeOrderHandler,
		scheduleOrderHandler: scheduleOrderHandler,
		cancelOrderHandler:   cancelOrderHandler,
		trackOrderHandler:    trackOrderHandler,
		searchOrdersHandler:  searchOrdersHandler,
		getCapacityHandler:   getCapacityHandler,
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body PlaceOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	lines, err := toLineRequests(body.Lines)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, actorFrom(ctx), lines)
	if err != nil {
		return err
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.Bytes()})
}

// ScheduleOrder handles POST /api/v1/orders/schedule.
func (s *Server) ScheduleOrder(ctx echo.Context) error {
	var body ScheduleOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	lines, err := toLineRequests(body.Lines)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewScheduleOrderCommand(orderID, actorFrom(ctx), lines, body.ScheduledFor)
	if err != nil {
		return err
	}

	if err = s.scheduleOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.Bytes()})
}

// SearchOrders handles GET /api/v1/orders.
func (s *Server) SearchOrders(ctx echo.Context, params SearchOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			status, err := order.ParseStatus(name)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	var userID *kernel.UUID
	if params.UserID != nil {
		id, err := kernel.UUIDFromBytes(params.UserID[:])
		if err != nil {
			return err
		}
		userID = &id
	}

	query, err := queries.NewSearchOrdersQuery(actorFrom(ctx), statuses, params.DateFrom, params.DateTo, userID)
	if err != nil {
		return err
	}

	found, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, 0, len(found))
	for _, o := range found {
		response = append(response, toOrder(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetCapacity handles GET /api/v1/orders/capacity.
func (s *Server) GetCapacity(ctx echo.Context) error {
	resp, err := s.getCapacityHandler.Handle(ctx.Request().Context(), queries.NewGetCapacityQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Capacity{
		Occupied: resp.Occupied,
		Capacity: resp.Capacity,
		CanAdmit: resp.CanAdmit,
	})
}

// TrackOrder handles GET /api/v1/orders/{id}.
func (s *Server) TrackOrder(ctx echo.Context, id kernel.UUID) error {
	resp, err := s.track(ctx, id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(resp))
}

// CancelOrder handles PUT /api/v1/orders/{id}/cancel and answers with the
// canceled order.
func (s *Server) CancelOrder(ctx echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(id, actorFrom(ctx))
	if err != nil {
		return err
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	resp, err := s.track(ctx, id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(resp))
}

func (s *Server) track(ctx echo.Context, id kernel.UUID) (queries.OrderResponse, error) {
	query, err := queries.NewTrackOrderQuery(id, actorFrom(ctx))
	if err != nil {
		return queries.OrderResponse{}, err
	}
	return s.trackOrderHandler.Handle(ctx.Request().Context(), query)
}

// bindOrderID reads the {id} path parameter.
func bindOrderID(ctx echo.Context) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	return kernel.UUIDFromBytes(raw[:])
}

func bindSearchOrdersParams(ctx echo.Context) (SearchOrdersParams, error) {
	var params SearchOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter status: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateFrom", ctx.QueryParams(), &params.DateFrom); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter dateFrom: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateTo", ctx.QueryParams(), &params.DateTo); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter dateTo: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "userId", ctx.QueryParams(), &params.UserID); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter userId: "+err.Error())
	}

	return params, nil
}
