package query

import (
	"event-browser-backend/cmd/event-browser/model"
	"fmt"
	"sort"
	"strings"
	"time"
)

type SortKey string

const (
	SortNone    SortKey = ""
	SortSoon    SortKey = "soon"
	SortNew     SortKey = "new"
	SortPopular SortKey = "popular"
)

// ParseSortKey accepts the empty string as "no ordering".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortSoon, SortNew, SortPopular:
		return k, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// FilterSpec holds the predicates and ordering applied to an event list. Nil
// and empty fields do not filter.
type FilterSpec struct {
	Category  *string
	Query     string
	StartDate string
	EndDate   string
	Online    *bool
	PriceMin  *float64
	PriceMax  *float64
	Sort      SortKey
}

func (f FilterSpec) hasDateBound() bool {
	return strings.TrimSpace(f.StartDate) != "" || strings.TrimSpace(f.EndDate) != ""
}

// Apply returns the events matching every active predicate of f, ordered by
// f.Sort. The input slice and its events are not modified.
func Apply(events []model.Event, f FilterSpec) []model.Event {
	m := newMatcher(f)

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if m.match(e) {
			out = append(out, e.Clone())
		}
	}

	sortEvents(out, f.Sort)
	return out
}

type matcher struct {
	spec     FilterSpec
	query    string
	from     time.Time
	hasFrom  bool
	to       time.Time
	hasTo    bool
	dateOnly bool
}

func newMatcher(f FilterSpec) matcher {
	m := matcher{
		spec:  f,
		query: strings.ToLower(strings.TrimSpace(f.Query)),
	}
	m.from, m.hasFrom = model.ParseDate(f.StartDate)

	var to time.Time
	to, m.dateOnly, m.hasTo = model.ParseDateLayout(f.EndDate)
	if m.hasTo && m.dateOnly {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	m.to = to
	return m
}

func (m matcher) match(e model.Event) bool {
	if m.spec.Category != nil && !e.HasCategory(*m.spec.Category) {
		return false
	}

	if m.query != "" && !matchesText(e, m.query) {
		return false
	}

	if m.spec.hasDateBound() {
		start, ok := model.ParseDate(e.StartDate)
		if !ok {
			return false
		}
		if m.hasFrom && start.Before(m.from) {
			return false
		}
		if m.hasTo && start.After(m.to) {
			return false
		}
	}

	if m.spec.Online != nil {
		online := e.Online != nil && *e.Online
		if online != *m.spec.Online {
			return false
		}
	}

	price := e.PriceOrZero()
	if m.spec.PriceMin != nil && price < *m.spec.PriceMin {
		return false
	}
	if m.spec.PriceMax != nil && price > *m.spec.PriceMax {
		return false
	}

	return true
}

func matchesText(e model.Event, q string) bool {
	for _, s := range []string{e.Title, e.Description, e.Location} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func sortEvents(events []model.Event, key SortKey) {
	switch key {
	case SortSoon:
		sort.SliceStable(events, func(i, j int) bool {
			return earlier(events[i].StartDate, events[j].StartDate)
		})
	case SortNew:
		sort.SliceStable(events, func(i, j int) bool {
			return earlier(createdOrStart(events[j]), createdOrStart(events[i]))
		})
	case SortPopular:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Likes > events[j].Likes
		})
	}
}

// earlier orders parseable dates ascending and puts unparseable ones last.
func earlier(a, b string) bool {
	ta, okA := model.ParseDate(a)
	tb, okB := model.ParseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA:
		return true
	default:
		return false
	}
}

func createdOrStart(e model.Event) string {
	if _, ok := model.ParseDate(e.CreatedAt); ok {
		return e.CreatedAt
	}
	return e.StartDate
}
