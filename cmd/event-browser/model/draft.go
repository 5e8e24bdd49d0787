package model

import "strings"

// EventDraft is the caller-supplied part of a new event.
type EventDraft struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate,omitempty"`
	Categories     []string `json:"categories"`
	Online         *bool    `json:"online,omitempty"`
	IsPrivate      bool     `json:"isPrivate"`
	InvitedUserIDs []string `json:"invitedUserIds,omitempty"`
	RsvpRequired   bool     `json:"rsvpRequired"`
	Price          *float64 `json:"price,omitempty"`
	Capacity       *int     `json:"capacity,omitempty"`
	CreatorID      string   `json:"creatorId,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Host           string   `json:"host,omitempty"`
	TicketURL      string   `json:"ticketUrl,omitempty"`
}

// ToEvent builds an event with no id, engagement or timestamps set.
func (d EventDraft) ToEvent() Event {
	e := Event{
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		Location:       strings.TrimSpace(d.Location),
		StartDate:      strings.TrimSpace(d.StartDate),
		EndDate:        strings.TrimSpace(d.EndDate),
		Categories:     cloneStrings(d.Categories),
		Online:         d.Online,
		IsPrivate:      d.IsPrivate,
		InvitedUserIDs: cloneStrings(d.InvitedUserIDs),
		RsvpRequired:   d.RsvpRequired,
		Price:          d.Price,
		Capacity:       d.Capacity,
		CreatorID:      d.CreatorID,
		ImageURL:       strings.TrimSpace(d.ImageURL),
		Host:           d.Host,
		TicketURL:      strings.TrimSpace(d.TicketURL),
		LikedBy:        []string{},
		RsvpedBy:       []string{},
	}
	return e.Clone()
}

// EventUpdate carries the fields to overwrite on an existing event. Nil
// fields keep their stored value. Engagement, id and createdAt are not
// updatable.
type EventUpdate struct {
	ID             string   `json:"id"`
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Location       *string  `json:"location,omitempty"`
	StartDate      *string  `json:"startDate,omitempty"`
	EndDate        *string  `json:"endDate,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Online         *bool    `json:"online,omitempty"`
	IsPrivate      *bool    `json:"isPrivate,omitempty"`
	InvitedUserIDs []string `json:"invitedUserIds,omitempty"`
	RsvpRequired   *bool    `json:"rsvpRequired,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Capacity       *int     `json:"capacity,omitempty"`
	ImageURL       *string  `json:"imageUrl,omitempty"`
	Host           *string  `json:"host,omitempty"`
	TicketURL      *string  `json:"ticketUrl,omitempty"`
}

// ApplyTo merges u over e.
func (u EventUpdate) ApplyTo(e *Event) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&e.Title, u.Title)
	setString(&e.Description, u.Description)
	setString(&e.Location, u.Location)
	setString(&e.StartDate, u.StartDate)
	setString(&e.EndDate, u.EndDate)
	setString(&e.ImageURL, u.ImageURL)
	setString(&e.TicketURL, u.TicketURL)
	if u.Host != nil {
		e.Host = *u.Host
	}

	if u.Categories != nil {
		e.Categories = cloneStrings(u.Categories)
	}
	if u.InvitedUserIDs != nil {
		e.InvitedUserIDs = cloneStrings(u.InvitedUserIDs)
	}
	if u.Online != nil {
		v := *u.Online
		e.Online = &v
	}
	if u.IsPrivate != nil {
		e.IsPrivate = *u.IsPrivate
	}
	if u.RsvpRequired != nil {
		e.RsvpRequired = *u.RsvpRequired
	}
	if u.Price != nil {
		v := *u.Price
		e.Price = &v
	}
	if u.Capacity != nil {
		v := *u.Capacity
		e.Capacity = &v
	}
}
