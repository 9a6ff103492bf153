package http

import (
	"errors"
	"net/http"

	"parceltracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Persistence and other unclassified failures are reported as a generic
// server error; their detail stays in the server log only.
func respondError(ctx echo.Context, err error) error {
	var (
		notFound  *errs.ObjectNotFoundError
		forbidden *errs.NotAuthorizedError
		conflict  *errs.ConflictError
		quantity  *errs.InvalidQuantityError
		invalid   *errs.ValueIsInvalidError
		required  *errs.ValueIsRequiredError
		outRange  *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.As(err, &notFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.As(err, &forbidden):
		return respond(ctx, http.StatusForbidden, err)
	case errors.As(err, &conflict):
		return respond(ctx, http.StatusConflict, err)
	case errors.As(err, &quantity),
		errors.As(err, &invalid),
		errors.As(err, &required),
		errors.As(err, &outRange):
		return respond(ctx, http.StatusBadRequest, err)
	default:
		ctx.Logger().Error(err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// badRequest reports a malformed request body or path parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
