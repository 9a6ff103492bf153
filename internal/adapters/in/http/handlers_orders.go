package http

import (
	"net/http"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/application/usecases/queries"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// RegisterUser handles POST /api/v1/users - registers a new account.
// The only unauthenticated endpoint; everything below requires an identity.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body registerUserRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	currency, err := kernel.NewCurrency(body.BaseCurrency)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, body.Email, body.Password, currency)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.registerUserHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: userID.String()})
}

// ListOrders handles GET /api/v1/orders - the enriched order list.
// Query params: include_archived, include_deleted.
func (s *Server) ListOrders(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(
		userID,
		ctx.QueryParam("include_archived") == "true",
		ctx.QueryParam("include_deleted") == "true",
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderDTO(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - records a purchase.
func (s *Server) CreateOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	var body createOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	price, err := kernel.NewMoneyFromString(body.PriceOriginal)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	currency, err := kernel.NewCurrency(body.CurrencyOriginal)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	explicitRate, err := parseOptionalRate(body.ExchangeRate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		userID,
		body.Platform,
		body.ExternalNumber,
		body.OrderDate,
		body.ProtectionEndDate,
		price,
		currency,
		explicitRate,
		body.IsPriceEstimated,
		body.Comment,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// UpdateOrder handles PUT /api/v1/orders/:orderID - full-state order edit.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return err
	}

	var body updateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	shippingCost, err := parseOptionalMoney(body.ShippingCost)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	customsCost, err := parseOptionalMoney(body.CustomsCost)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrderCommand(
		orderID,
		userID,
		body.Platform,
		body.ExternalNumber,
		body.OrderDate,
		body.ProtectionEndDate,
		body.Comment,
		shippingCost,
		customsCost,
		body.Archived,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderID. Whether the order is
// hard- or soft-deleted depends on the parcels referencing its items.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderItem handles POST /api/v1/orders/:orderID/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return err
	}

	var body orderItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	price, err := parseOptionalMoney(body.PricePerItem)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddOrderItemCommand(
		orderID,
		userID,
		itemID,
		body.Name,
		body.Tags,
		body.QuantityOrdered,
		price,
		order.ItemStatus(body.Status),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: itemID.String()})
}

// UpdateOrderItem handles PUT /api/v1/orders/:orderID/items/:itemID.
func (s *Server) UpdateOrderItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return err
	}

	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return err
	}

	var body orderItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	price, err := parseOptionalMoney(body.PricePerItem)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrderItemCommand(
		orderID,
		userID,
		itemID,
		body.Name,
		body.Tags,
		body.QuantityOrdered,
		body.QuantityReceived,
		price,
		order.ItemStatus(body.Status),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:orderID/items/:itemID.
// Any parcel allocations of the item cascade with it.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return err
	}

	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, userID, itemID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removeOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
