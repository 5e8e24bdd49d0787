package model

import (
	"fmt"
	"strconv"
	"strings"
)

// CategorySeparator splits the categories column of an events CSV.
const CategorySeparator = "|"

// EventCSV is one row of an events import or export.
type EventCSV struct {
	Title       string `csv:"title"`
	Description string `csv:"description"`
	StartDate   string `csv:"start_date"`
	EndDate     string `csv:"end_date"`
	Location    string `csv:"location"`
	Categories  string `csv:"categories"`
	Price       string `csv:"price"`
	Capacity    string `csv:"capacity"`
	Online      string `csv:"online"`
}

// ToDraft converts a row into a draft, rejecting malformed numeric and
// boolean columns. Empty columns are left unset.
func (r EventCSV) ToDraft() (EventDraft, error) {
	d := EventDraft{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Location:    r.Location,
	}

	for _, c := range strings.Split(r.Categories, CategorySeparator) {
		if c = strings.TrimSpace(c); c != "" {
			d.Categories = append(d.Categories, c)
		}
	}

	if s := strings.TrimSpace(r.Price); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return d, fmt.Errorf("price: %q is not a number", r.Price)
		}
		d.Price = &p
	}

	if s := strings.TrimSpace(r.Capacity); s != "" {
		c, err := strconv.Atoi(s)
		if err != nil {
			return d, fmt.Errorf("capacity: %q is not an integer", r.Capacity)
		}
		d.Capacity = &c
	}

	if s := strings.TrimSpace(r.Online); s != "" {
		o, err := strconv.ParseBool(s)
		if err != nil {
			return d, fmt.Errorf("online: %q is not a boolean", r.Online)
		}
		d.Online = &o
	}

	return d, nil
}

// NewEventCSV flattens an event into an export row.
func NewEventCSV(e Event) EventCSV {
	r := EventCSV{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Categories:  strings.Join(e.Categories, CategorySeparator),
	}
	if e.Price != nil {
		r.Price = strconv.FormatFloat(*e.Price, 'f', -1, 64)
	}
	if e.Capacity != nil {
		r.Capacity = strconv.Itoa(*e.Capacity)
	}
	if e.Online != nil {
		r.Online = strconv.FormatBool(*e.Online)
	}
	return r
}
