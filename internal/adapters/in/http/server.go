// Package http provides the inbound HTTP adapter: an echo server exposing
// the command and query use cases as a JSON API. Authentication is not this
// service's job; an upstream gateway verifies the caller and forwards the
// identity in the X-User-ID header.
package http

import (
	"net/http"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/application/usecases/queries"
	"parceltracker/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the verified caller identity set by the gateway.
const userIDHeader = "X-User-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerUserHandler    commands.RegisterUserCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler
	updateOrderHandler     commands.UpdateOrderCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler
	addOrderItemHandler    commands.AddOrderItemCommandHandler
	updateOrderItemHandler commands.UpdateOrderItemCommandHandler
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler
	createParcelHandler    commands.CreateParcelCommandHandler
	updateParcelHandler    commands.UpdateParcelCommandHandler
	deleteParcelHandler    commands.DeleteParcelCommandHandler
	allocateItemHandler    commands.AllocateItemCommandHandler
	deallocateItemHandler  commands.DeallocateItemCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
	getParcelHandler  queries.GetParcelQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerUserHandler commands.RegisterUserCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	updateOrderItemHandler commands.UpdateOrderItemCommandHandler,
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler,
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelHandler commands.UpdateParcelCommandHandler,
	deleteParcelHandler commands.DeleteParcelCommandHandler,
	allocateItemHandler commands.AllocateItemCommandHandler,
	deallocateItemHandler commands.DeallocateItemCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getParcelHandler queries.GetParcelQueryHandler,
) *Server {
	return &Server{
		registerUserHandler:    registerUserHandler,
		createOrderHandler:     createOrderHandler,
		updateOrderHandler:     updateOrderHandler,
		deleteOrderHandler:     deleteOrderHandler,
		addOrderItemHandler:    addOrderItemHandler,
		updateOrderItemHandler: updateOrderItemHandler,
		removeOrderItemHandler: removeOrderItemHandler,
		createParcelHandler:    createParcelHandler,
		updateParcelHandler:    updateParcelHandler,
		deleteParcelHandler:    deleteParcelHandler,
		allocateItemHandler:    allocateItemHandler,
		deallocateItemHandler:  deallocateItemHandler,
		listOrdersHandler:      listOrdersHandler,
		getParcelHandler:       getParcelHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/users", s.RegisterUser)

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:orderID", s.UpdateOrder)
	api.DELETE("/orders/:orderID", s.DeleteOrder)
	api.POST("/orders/:orderID/items", s.AddOrderItem)
	api.PUT("/orders/:orderID/items/:itemID", s.UpdateOrderItem)
	api.DELETE("/orders/:orderID/items/:itemID", s.RemoveOrderItem)

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/:parcelID", s.GetParcel)
	api.PUT("/parcels/:parcelID", s.UpdateParcel)
	api.DELETE("/parcels/:parcelID", s.DeleteParcel)
	api.POST("/parcels/:parcelID/items", s.AllocateItem)
	api.DELETE("/parcels/:parcelID/items/:orderItemID", s.DeallocateItem)
}

// callerID extracts the verified user identity from the request.
func callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	if raw == "" {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "missing "+userIDHeader+" header")
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "malformed "+userIDHeader+" header")
	}

	return id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "malformed "+name)
	}
	return id, nil
}
