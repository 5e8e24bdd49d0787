package model

import (
	"encoding/json"
	"strings"
)

// Event is the persisted shape of an event. Likes and Rsvps are always the
// sizes of LikedBy and RsvpedBy.
type Event struct {
	ID             string   `json:"id"`
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	StartDate      string   `json:"startDate" validate:"required,isodate"`
	EndDate        string   `json:"endDate,omitempty" validate:"omitempty,isodate"`
	Categories     []string `json:"categories" validate:"min=1,dive,required"`
	Online         *bool    `json:"online,omitempty"`
	IsPrivate      bool     `json:"isPrivate"`
	InvitedUserIDs []string `json:"invitedUserIds,omitempty"`
	RsvpRequired   bool     `json:"rsvpRequired"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Capacity       *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Likes          int      `json:"likes"`
	LikedBy        []string `json:"likedBy"`
	Rsvps          int      `json:"rsvps"`
	RsvpedBy       []string `json:"rsvpedBy"`
	CreatorID      string   `json:"creatorId,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	ImageURL       string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Host           string   `json:"host,omitempty"`
	TicketURL      string   `json:"ticketUrl,omitempty" validate:"omitempty,url"`
}

// LikedByUser reports whether userID is in LikedBy.
func (e Event) LikedByUser(userID string) bool {
	return userID != "" && contains(e.LikedBy, userID)
}

// RsvpedByUser reports whether userID is in RsvpedBy.
func (e Event) RsvpedByUser(userID string) bool {
	return userID != "" && contains(e.RsvpedBy, userID)
}

// HasCategory reports whether tag is one of the event's categories.
func (e Event) HasCategory(tag string) bool {
	return contains(e.Categories, tag)
}

// PriceOrZero treats a missing price as free.
func (e Event) PriceOrZero() float64 {
	if e.Price == nil {
		return 0
	}
	return *e.Price
}

// Clone returns a copy that shares no slices or pointers with e.
func (e Event) Clone() Event {
	c := e
	c.Categories = cloneStrings(e.Categories)
	c.InvitedUserIDs = cloneStrings(e.InvitedUserIDs)
	c.LikedBy = cloneStrings(e.LikedBy)
	c.RsvpedBy = cloneStrings(e.RsvpedBy)
	if e.Online != nil {
		v := *e.Online
		c.Online = &v
	}
	if e.Price != nil {
		v := *e.Price
		c.Price = &v
	}
	if e.Capacity != nil {
		v := *e.Capacity
		c.Capacity = &v
	}
	return c
}

// Normalize puts e into canonical form and reports whether anything changed.
// Tag and user-id lists are trimmed and deduplicated, counts are derived from
// the id sets and UpdatedAt is never earlier than CreatedAt.
func (e *Event) Normalize() bool {
	changed := false

	for _, list := range []*[]string{&e.Categories, &e.LikedBy, &e.RsvpedBy} {
		u := uniqueStrings(*list)
		if *list == nil || !equalStrings(u, *list) {
			changed = true
		}
		*list = u
	}
	if e.InvitedUserIDs != nil {
		u := uniqueStrings(e.InvitedUserIDs)
		if !equalStrings(u, e.InvitedUserIDs) {
			changed = true
		}
		e.InvitedUserIDs = u
	}

	if e.Likes != len(e.LikedBy) {
		e.Likes = len(e.LikedBy)
		changed = true
	}
	if e.Rsvps != len(e.RsvpedBy) {
		e.Rsvps = len(e.RsvpedBy)
		changed = true
	}

	created, okC := ParseDate(e.CreatedAt)
	updated, okU := ParseDate(e.UpdatedAt)
	if okC && (!okU || updated.Before(created)) {
		e.UpdatedAt = e.CreatedAt
		changed = true
	}

	return changed
}

// EventView is an event as one viewer sees it. The flags are derived from
// the id sets on every read and never stored.
type EventView struct {
	Event
	UserLiked  bool `json:"userLiked"`
	UserRsvped bool `json:"userRsvped"`
}

// ViewsFor derives the viewer flags of u, matching any of its identities.
func ViewsFor(events []Event, u *User) []EventView {
	ids := u.Identities()
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{Event: e}
		for _, id := range ids {
			v.UserLiked = v.UserLiked || e.LikedByUser(id)
			v.UserRsvped = v.UserRsvped || e.RsvpedByUser(id)
		}
		views = append(views, v)
	}
	return views
}

// storedEvent is the on-disk shape including fields written by older
// clients: a single category, rsvps as an id array, creator variants and
// per-viewer flags.
type storedEvent struct {
	Event
	Rsvps      json.RawMessage `json:"rsvps"`
	Category   string          `json:"category"`
	CreatedBy  string          `json:"createdBy"`
	Creator    *creatorRef     `json:"creator"`
	UserLiked  *bool           `json:"userLiked"`
	UserRsvped *bool           `json:"userRsvped"`
}

type creatorRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DecodeResult summarizes what DecodeEvents had to migrate.
type DecodeResult struct {
	Migrated int
	// DroppedRsvpCounts counts records whose rsvps was a bare number with no
	// user ids behind it.
	DroppedRsvpCounts int
}

// Changed reports whether the decoded list differs from its stored form.
func (r DecodeResult) Changed() bool {
	return r.Migrated > 0
}

// DecodeEvents parses a persisted event list, accepting legacy shapes, and
// returns it in canonical form.
func DecodeEvents(data []byte) ([]Event, DecodeResult, error) {
	var res DecodeResult

	var stored []storedEvent
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, res, err
	}

	events := make([]Event, 0, len(stored))
	for _, s := range stored {
		e, migrated, dropped := s.toEvent()
		if migrated {
			res.Migrated++
		}
		if dropped {
			res.DroppedRsvpCounts++
		}
		events = append(events, e)
	}

	return events, res, nil
}

func (s storedEvent) toEvent() (Event, bool, bool) {
	e := s.Event
	migrated := false
	dropped := false

	if s.Category != "" {
		e.Categories = append([]string{s.Category}, e.Categories...)
		migrated = true
	}

	raw := strings.TrimSpace(string(s.Rsvps))
	switch {
	case raw == "" || raw == "null":
	case strings.HasPrefix(raw, "["):
		var ids []string
		if err := json.Unmarshal(s.Rsvps, &ids); err == nil {
			e.RsvpedBy = append(e.RsvpedBy, ids...)
		}
		migrated = true
	default:
		var n int
		if err := json.Unmarshal(s.Rsvps, &n); err == nil {
			e.Rsvps = n
			if n > 0 && len(e.RsvpedBy) == 0 {
				dropped = true
			}
		}
	}

	if e.CreatorID == "" {
		switch {
		case s.CreatedBy != "":
			e.CreatorID = s.CreatedBy
		case s.Creator != nil && s.Creator.ID != "":
			e.CreatorID = s.Creator.ID
		}
	}
	if s.CreatedBy != "" || s.Creator != nil {
		migrated = true
	}
	if s.UserLiked != nil || s.UserRsvped != nil {
		migrated = true
	}

	if e.Normalize() {
		migrated = true
	}

	return e, migrated, dropped
}

// EncodeEvents serializes events in canonical form.
func EncodeEvents(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	return json.Marshal(events)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
