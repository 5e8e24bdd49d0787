package query

import (
	"event-browser-backend/cmd/event-browser/model"
	"sort"
	"time"
)

type Stats struct {
	Total      int        `json:"total"`
	Categories int        `json:"categories"`
	Next       *time.Time `json:"next,omitempty"`
	NextID     string     `json:"nextId,omitempty"`
}

// ComputeStats summarizes the unfiltered list. Next is the earliest parseable
// startDate.
func ComputeStats(events []model.Event) Stats {
	s := Stats{
		Total:      len(events),
		Categories: len(Categories(events)),
	}

	for _, e := range events {
		t, ok := model.ParseDate(e.StartDate)
		if !ok {
			continue
		}
		if s.Next == nil || t.Before(*s.Next) {
			next := t
			s.Next = &next
			s.NextID = e.ID
		}
	}

	return s
}

// Categories returns every distinct tag, sorted.
func Categories(events []model.Event) []string {
	seen := map[string]struct{}{}
	for _, e := range events {
		for _, c := range e.Categories {
			seen[c] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type Profile struct {
	User    *model.User   `json:"user"`
	Created []model.Event `json:"created"`
	Rsvped  []model.Event `json:"rsvped"`
}

// BuildProfile splits events into the ones the user created and the ones they
// RSVP'd to without creating. A user may be recorded under any of their
// identities.
func BuildProfile(events []model.Event, user *model.User) Profile {
	p := Profile{
		User:    user,
		Created: []model.Event{},
		Rsvped:  []model.Event{},
	}
	if user == nil {
		return p
	}

	ids := user.Identities()
	for _, e := range events {
		switch {
		case containsAny(ids, e.CreatorID):
			p.Created = append(p.Created, e.Clone())
		case anyRsvped(e, ids):
			p.Rsvped = append(p.Rsvped, e.Clone())
		}
	}

	return p
}

func containsAny(ids []string, v string) bool {
	if v == "" {
		return false
	}
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}

func anyRsvped(e model.Event, ids []string) bool {
	for _, id := range ids {
		if e.RsvpedByUser(id) {
			return true
		}
	}
	return false
}
