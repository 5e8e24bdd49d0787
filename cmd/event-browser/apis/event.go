package apis

import (
	"bytes"
	"context"
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/query"
	"fmt"
	"io"
	"net/http"

	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var utf8BOM = []byte("\xef\xbb\xbf")

type IEventStore interface {
	Events() []model.Event
	Event(id string) (model.Event, bool)
	AddEvent(ctx context.Context, draft model.EventDraft) (model.Event, error)
	UpdateEvent(ctx context.Context, update model.EventUpdate) (model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id, userID string) (model.Event, error)
	ToggleRsvp(ctx context.Context, id, userID string) (model.Event, error)
	CurrentUser() *model.User
}

type EventAPI struct {
	store  IEventStore
	logger *zap.Logger
	debug  bool
}

func NewEventAPI(store IEventStore, logger *zap.Logger, debug bool) *EventAPI {

	return &EventAPI{
		store:  store,
		logger: logger.Named("apis.event"),
		debug:  debug,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.POST("/events", a.createEvent)
	g.GET("/events/stats", a.eventStats)
	g.GET("/events/categories", a.listCategories)
	g.GET("/events/export", a.exportEvents)
	g.POST("/events/import", a.importEvents)
	g.GET("/events/:id", a.getEvent)
	g.PUT("/events/:id", a.updateEvent)
	g.DELETE("/events/:id", a.deleteEvent)
	g.POST("/events/:id/like", a.toggleLike)
	g.POST("/events/:id/rsvp", a.toggleRsvp)
}

// view attaches the current user's like and rsvp flags.
func (a *EventAPI) view(e model.Event) model.EventView {
	return model.ViewsFor([]model.Event{e}, a.store.CurrentUser())[0]
}

func (a *EventAPI) listEvents(c echo.Context) error {

	spec, err := parseFilter(c)
	if err != nil {
		return badRequest(c, err)
	}

	events := query.Apply(a.store.Events(), spec)

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    model.ViewsFor(events, a.store.CurrentUser()),
		},
	)
}

func (a *EventAPI) eventStats(c echo.Context) error {

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    query.ComputeStats(a.store.Events()),
		},
	)
}

func (a *EventAPI) listCategories(c echo.Context) error {

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    query.Categories(a.store.Events()),
		},
	)
}

func (a *EventAPI) getEvent(c echo.Context) error {

	id := c.Param("id")

	event, ok := a.store.Event(id)
	if !ok {
		return c.JSON(
			http.StatusNotFound,
			model.BaseResponse{
				Message: fmt.Sprintf("event %q not found", id),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.view(event),
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var draft model.EventDraft
	if err := c.Bind(&draft); err != nil {
		return badRequest(c, err)
	}

	event, err := a.store.AddEvent(ctx, draft)
	if err != nil {
		return storeError(c, err, event)
	}

	a.logger.Info("event created", zap.String("eventId", event.ID))

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var update model.EventUpdate
	if err := c.Bind(&update); err != nil {
		return badRequest(c, err)
	}
	update.ID = c.Param("id")

	event, err := a.store.UpdateEvent(ctx, update)
	if err != nil {
		return storeError(c, err, event)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()

	if err := a.store.DeleteEvent(ctx, c.Param("id")); err != nil {
		return storeError(c, err, nil)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func (a *EventAPI) toggleLike(c echo.Context) error {

	event, err := a.store.ToggleLike(
		c.Request().Context(),
		c.Param("id"),
		c.QueryParam("userId"),
	)
	if err != nil {
		return storeError(c, err, a.view(event))
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.view(event),
		},
	)
}

func (a *EventAPI) toggleRsvp(c echo.Context) error {

	event, err := a.store.ToggleRsvp(
		c.Request().Context(),
		c.Param("id"),
		c.QueryParam("userId"),
	)
	if err != nil {
		return storeError(c, err, a.view(event))
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.view(event),
		},
	)
}

func (a *EventAPI) importEvents(c echo.Context) error {

	ctx := c.Request().Context()

	csvfile, err := c.FormFile("csvfile")
	if err != nil {
		return badRequest(c, err)
	}

	cf, err := csvfile.Open()
	if err != nil {
		return badRequest(c, err)
	}

	defer cf.Close()

	data, err := io.ReadAll(cf)
	if err != nil {
		return badRequest(c, err)
	}

	// spreadsheet exports often lead with a UTF-8 byte order mark
	data = bytes.TrimPrefix(data, utf8BOM)

	var rows []*model.EventCSV
	err = gocsv.UnmarshalBytes(data, &rows)
	if err != nil {
		return badRequest(c, err)
	}

	if a.debug {
		godump.Dump(rows)
	}

	result := model.ImportResult{
		Created: []string{},
	}

	for i, row := range rows {
		// header is line 1
		line := i + 2

		draft, err := row.ToDraft()
		if err != nil {
			result.Errors = append(result.Errors, model.ImportRowError{Row: line, Message: err.Error()})
			continue
		}

		event, err := a.store.AddEvent(ctx, draft)
		if event.ID != "" {
			result.Created = append(result.Created, event.ID)
		}
		if err != nil {
			result.Errors = append(result.Errors, model.ImportRowError{Row: line, Message: err.Error()})
		}
	}

	a.logger.Info("events imported",
		zap.String("file", csvfile.Filename),
		zap.Int("rows", len(rows)),
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Errors)),
	)

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    result,
		},
	)
}

func (a *EventAPI) exportEvents(c echo.Context) error {

	spec, err := parseFilter(c)
	if err != nil {
		return badRequest(c, err)
	}

	events := query.Apply(a.store.Events(), spec)

	rows := make([]*model.EventCSV, 0, len(events))
	for _, e := range events {
		row := model.NewEventCSV(e)
		rows = append(rows, &row)
	}

	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
