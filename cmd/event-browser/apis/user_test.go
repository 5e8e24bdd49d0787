package apis

import (
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/query"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAPI_CurrentUserLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user model.User
	decodeData(t, rec, &user)
	assert.Equal(t, *model.DefaultUser(), user)

	rec = doJSON(e, http.MethodPut, "/api/v1/me", model.User{ID: "u7", Name: "Sam"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/me", nil)
	decodeData(t, rec, &user)
	assert.Equal(t, "u7", user.ID)

	rec = doJSON(e, http.MethodDelete, "/api/v1/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/me", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/me/profile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserAPI_SignInValidation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/me", model.User{Name: "No id"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var fields []model.FieldErrorResponse
	decodeData(t, rec, &fields)
	require.Len(t, fields, 1)
	assert.Equal(t, "id", fields[0].Field)
}

func TestUserAPI_Profile(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/events", draftBody("Mine", "Tech", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	other := draftBody("Theirs", "Art", nil)
	other.CreatorID = "someone-else"
	rec = doJSON(e, http.MethodPost, "/api/v1/events", other)
	require.Equal(t, http.StatusCreated, rec.Code)
	var theirs model.Event
	decodeData(t, rec, &theirs)

	rec = doJSON(e, http.MethodPost, "/api/v1/events/"+theirs.ID+"/rsvp", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/me/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile query.Profile
	decodeData(t, rec, &profile)
	require.Len(t, profile.Created, 1)
	assert.Equal(t, "Mine", profile.Created[0].Title)
	require.Len(t, profile.Rsvped, 1)
	assert.Equal(t, "Theirs", profile.Rsvped[0].Title)
}
