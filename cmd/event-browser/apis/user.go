package apis

import (
	"context"
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/query"
	"net/http"

	"github.com/labstack/echo/v4"
)

type IUserStore interface {
	Events() []model.Event
	CurrentUser() *model.User
	SetCurrentUser(ctx context.Context, user *model.User) error
}

// UserAPI exposes the mock signed-in identity.
type UserAPI struct {
	store IUserStore
}

func NewUserAPI(store IUserStore) *UserAPI {
	return &UserAPI{
		store: store,
	}
}

func (a *UserAPI) Setup(g *echo.Group) {
	g.GET("/me", a.getCurrentUser)
	g.PUT("/me", a.signIn)
	g.DELETE("/me", a.signOut)
	g.GET("/me/profile", a.getProfile)
}

func notSignedIn(c echo.Context) error {
	return c.JSON(
		http.StatusNotFound,
		model.BaseResponse{
			Message: "not signed in",
		},
	)
}

func (a *UserAPI) getCurrentUser(c echo.Context) error {

	user := a.store.CurrentUser()
	if user == nil {
		return notSignedIn(c)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    user,
		},
	)
}

func (a *UserAPI) signIn(c echo.Context) error {

	var user model.User
	if err := c.Bind(&user); err != nil {
		return badRequest(c, err)
	}

	if err := a.store.SetCurrentUser(c.Request().Context(), &user); err != nil {
		return storeError(c, err, user)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    user,
		},
	)
}

func (a *UserAPI) signOut(c echo.Context) error {

	if err := a.store.SetCurrentUser(c.Request().Context(), nil); err != nil {
		return storeError(c, err, nil)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func (a *UserAPI) getProfile(c echo.Context) error {

	user := a.store.CurrentUser()
	if user == nil {
		return notSignedIn(c)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    query.BuildProfile(a.store.Events(), user),
		},
	)
}
