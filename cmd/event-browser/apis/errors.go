package apis

import (
	"errors"
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/store"
	"net/http"

	"github.com/labstack/echo/v4"
)

// storeError maps store failures onto HTTP statuses. applied is returned as
// data on persistence failures since the mutation already took effect.
func storeError(c echo.Context, err error, applied any) error {
	var verr *store.ValidationError

	switch {
	case errors.As(err, &verr):
		fields := make([]model.FieldErrorResponse, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, model.FieldErrorResponse{
				Field:   f.Field,
				Message: f.Message,
			})
		}
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Data:    fields,
				Message: err.Error(),
			},
		)

	case errors.Is(err, store.ErrNotFound):
		return c.JSON(
			http.StatusNotFound,
			model.BaseResponse{
				Message: err.Error(),
			},
		)

	case errors.Is(err, store.ErrPersistence):
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Data:    applied,
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusInternalServerError,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(
		http.StatusBadRequest,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}
