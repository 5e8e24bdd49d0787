package store

import (
	"time"
)

type ChangeType string

const (
	ChangeEventAdded   ChangeType = "event_added"
	ChangeEventUpdated ChangeType = "event_updated"
	ChangeEventDeleted ChangeType = "event_deleted"
	ChangeLikeToggled  ChangeType = "like_toggled"
	ChangeRsvpToggled  ChangeType = "rsvp_toggled"
	ChangeUserChanged  ChangeType = "user_changed"
)

// Change describes one applied mutation. Payload holds a copy of the
// resulting event or user and is nil for deletions and sign-out.
type Change struct {
	Type      ChangeType `json:"type"`
	EventID   string     `json:"eventId,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Payload   any        `json:"payload,omitempty"`
}

type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l to receive every change and returns a function that
// removes it. Listeners run on the mutating goroutine after the store lock is
// released, so they may call back into the store.
func (s *Store) Subscribe(l Listener) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: l})

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()

		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	s.lmu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.lmu.RUnlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}
