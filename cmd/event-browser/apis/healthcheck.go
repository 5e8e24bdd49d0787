package apis

import (
	"context"
	"event-browser-backend/cmd/event-browser/model"
	"net/http"

	"github.com/labstack/echo/v4"
)

type IPinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckAPI struct {
	storage IPinger
}

func NewHealthCheckAPI(storage IPinger) *HealthCheckAPI {
	return &HealthCheckAPI{
		storage: storage,
	}
}

func (a *HealthCheckAPI) Setup(g *echo.Group) {
	g.GET("/healthz", a.healthCheck)
}

func (a *HealthCheckAPI) healthCheck(c echo.Context) error {

	err := a.storage.Ping(c.Request().Context())
	if err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "healthy",
		},
	)
}
