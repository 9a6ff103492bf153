package http

import (
	"net/http"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/application/usecases/queries"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// CreateParcel handles POST /api/v1/parcels - registers an inbound shipment.
func (s *Server) CreateParcel(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	var body createParcelRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		parcelID,
		userID,
		body.TrackingNumber,
		body.CarrierSlug,
		body.Label,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: parcelID.String()})
}

// GetParcel handles GET /api/v1/parcels/:parcelID - the parcel with its
// contents resolved against the originating orders.
func (s *Server) GetParcel(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	parcelID, err := pathUUID(ctx, "parcelID")
	if err != nil {
		return err
	}

	query, err := queries.NewGetParcelQuery(userID, parcelID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcelDTO(response))
}

// UpdateParcel handles PUT /api/v1/parcels/:parcelID - full-state edit
// including manual status overrides and the weighed-at-pickup weight.
func (s *Server) UpdateParcel(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	parcelID, err := pathUUID(ctx, "parcelID")
	if err != nil {
		return err
	}

	var body updateParcelRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	weight, err := parseOptionalWeight(body.WeightKg)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateParcelCommand(
		parcelID,
		userID,
		body.TrackingNumber,
		body.CarrierSlug,
		body.Label,
		parcel.Status(body.Status),
		weight,
		body.Archived,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteParcel handles DELETE /api/v1/parcels/:parcelID. Deleting a parcel
// releases its allocations; the orders themselves are untouched.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	parcelID, err := pathUUID(ctx, "parcelID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateItem handles POST /api/v1/parcels/:parcelID/items - assigns units
// of an order item to the parcel, replacing any previous allocation of the
// same item in it.
func (s *Server) AllocateItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	parcelID, err := pathUUID(ctx, "parcelID")
	if err != nil {
		return err
	}

	var body allocateItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderItemID, err := kernel.UUIDFromString(body.OrderItemID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAllocateItemCommand(userID, parcelID, orderItemID, body.Quantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.allocateItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeallocateItem handles DELETE /api/v1/parcels/:parcelID/items/:orderItemID.
func (s *Server) DeallocateItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	parcelID, err := pathUUID(ctx, "parcelID")
	if err != nil {
		return err
	}

	orderItemID, err := pathUUID(ctx, "orderItemID")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeallocateItemCommand(userID, parcelID, orderItemID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deallocateItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
