package store

import (
	"context"
	"encoding/json"
	"event-browser-backend/cmd/event-browser/model"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxIDAttempts = 16

// Storage keys.
const (
	KeyEvents      = "events"
	KeyCurrentUser = "currentUser"
)

type IKeyValueRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Store owns the event list and the current user. Every mutation is applied
// in memory, then written through to the repo in full before it returns.
type Store struct {
	repo     IKeyValueRepo
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() (string, error)
	seedUser *model.User

	mu     sync.Mutex
	events []model.Event
	user   *model.User

	lmu     sync.RWMutex
	subs    []subscription
	nextSub int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l.Named("store")
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithDefaultUser signs u in when no identity has been persisted yet.
func WithDefaultUser(u *model.User) Option {
	return func(s *Store) {
		s.seedUser = u.Clone()
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// New loads the persisted state from repo. Legacy event records are migrated
// and written back once.
func New(ctx context.Context, repo IKeyValueRepo, opts ...Option) (*Store, error) {
	s := &Store{
		repo:     repo,
		logger:   zap.NewNop(),
		validate: newValidator(),
		now:      time.Now,
		newID:    newUUID,
		events:   []model.Event{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadEvents(ctx); err != nil {
		return nil, err
	}
	if err := s.loadUser(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("store loaded",
		zap.Int("events", len(s.events)),
		zap.Bool("signedIn", s.user != nil),
	)

	return s, nil
}

func (s *Store) loadEvents(ctx context.Context) error {
	raw, found, err := s.repo.Get(ctx, KeyEvents)
	if err != nil {
		return &PersistenceError{Op: "load", Key: KeyEvents, Err: err}
	}
	if !found || raw == "" {
		return nil
	}

	events, res, err := model.DecodeEvents([]byte(raw))
	if err != nil {
		return &PersistenceError{Op: "decode", Key: KeyEvents, Err: err}
	}
	s.events = events

	if res.DroppedRsvpCounts > 0 {
		s.logger.Warn("discarded rsvp counts without user ids",
			zap.Int("events", res.DroppedRsvpCounts),
		)
	}

	if res.Changed() {
		s.logger.Info("migrated legacy event records", zap.Int("events", res.Migrated))
		if err := s.saveEvents(ctx); err != nil {
			s.logger.Warn("failed to write back migrated events", zap.Error(err))
		}
	}

	return nil
}

func (s *Store) loadUser(ctx context.Context) error {
	raw, found, err := s.repo.Get(ctx, KeyCurrentUser)
	if err != nil {
		return &PersistenceError{Op: "load", Key: KeyCurrentUser, Err: err}
	}

	if found && raw != "" && raw != "null" {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return &PersistenceError{Op: "decode", Key: KeyCurrentUser, Err: err}
		}
		s.user = &u
		return nil
	}

	if s.seedUser == nil {
		return nil
	}

	s.user = s.seedUser.Clone()
	if err := s.saveUser(ctx); err != nil {
		s.logger.Warn("failed to persist default user", zap.Error(err))
	}
	return nil
}

// saveEvents writes the full list. Callers hold mu or own s exclusively.
func (s *Store) saveEvents(ctx context.Context) error {
	data, err := model.EncodeEvents(s.events)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: KeyEvents, Err: err}
	}

	if err := s.repo.Set(ctx, KeyEvents, string(data)); err != nil {
		return &PersistenceError{Op: "save", Key: KeyEvents, Err: err}
	}
	return nil
}

func (s *Store) saveUser(ctx context.Context) error {
	if s.user == nil {
		if err := s.repo.Remove(ctx, KeyCurrentUser); err != nil {
			return &PersistenceError{Op: "remove", Key: KeyCurrentUser, Err: err}
		}
		return nil
	}

	data, err := json.Marshal(s.user)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: KeyCurrentUser, Err: err}
	}

	if err := s.repo.Set(ctx, KeyCurrentUser, string(data)); err != nil {
		return &PersistenceError{Op: "save", Key: KeyCurrentUser, Err: err}
	}
	return nil
}

func (s *Store) timestamp() string {
	return model.FormatTimestamp(s.now())
}

func (s *Store) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate event id: %w", err)
		}
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate event id: no unused id after %d attempts", maxIDAttempts)
}

func (s *Store) logPersistFailure(op, id string, err error) {
	s.logger.Error("write-through failed, keeping in-memory state",
		zap.String("op", op),
		zap.String("eventId", id),
		zap.Error(err),
	)
}

// AddEvent validates the draft and appends it as a new event with a fresh id,
// no engagement and both timestamps set to now. The creator defaults to the
// current user.
func (s *Store) AddEvent(ctx context.Context, draft model.EventDraft) (model.Event, error) {
	s.mu.Lock()

	e := draft.ToEvent()
	if e.CreatorID == "" && s.user != nil {
		e.CreatorID = s.user.ID
	}
	e.Normalize()

	if err := s.check(e); err != nil {
		s.mu.Unlock()
		return model.Event{}, err
	}

	id, err := s.uniqueID()
	if err != nil {
		s.mu.Unlock()
		return model.Event{}, err
	}

	ts := s.timestamp()
	e.ID = id
	e.CreatedAt = ts
	e.UpdatedAt = ts

	s.events = append(s.events, e)
	persistErr := s.saveEvents(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		s.logPersistFailure("add", id, persistErr)
	}

	out := e.Clone()
	s.notify(Change{
		Type:      ChangeEventAdded,
		EventID:   id,
		Timestamp: s.now(),
		Payload:   e.Clone(),
	})

	return out, persistErr
}

// UpdateEvent merges u over the stored event. The merged record must pass
// validation or nothing is applied.
func (s *Store) UpdateEvent(ctx context.Context, u model.EventUpdate) (model.Event, error) {
	s.mu.Lock()

	idx := s.indexOf(u.ID)
	if idx < 0 {
		s.mu.Unlock()
		return model.Event{}, &NotFoundError{ID: u.ID}
	}

	merged := s.events[idx].Clone()
	u.ApplyTo(&merged)
	merged.Normalize()

	if err := s.check(merged); err != nil {
		s.mu.Unlock()
		return model.Event{}, err
	}

	merged.UpdatedAt = s.timestamp()
	merged.Normalize()

	s.events[idx] = merged
	persistErr := s.saveEvents(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		s.logPersistFailure("update", u.ID, persistErr)
	}

	s.notify(Change{
		Type:      ChangeEventUpdated,
		EventID:   u.ID,
		Timestamp: s.now(),
		Payload:   merged.Clone(),
	})

	return merged.Clone(), persistErr
}

// DeleteEvent removes the event if present. An unknown id is not an error and
// causes no write.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	s.events = append(s.events[:idx:idx], s.events[idx+1:]...)
	persistErr := s.saveEvents(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		s.logPersistFailure("delete", id, persistErr)
	}

	s.notify(Change{
		Type:      ChangeEventDeleted,
		EventID:   id,
		Timestamp: s.now(),
	})

	return persistErr
}

// ToggleLike adds userID to the event's likedBy set or removes it if present.
// An empty userID falls back to the current user. Without a signed-in user it
// is a no-op.
func (s *Store) ToggleLike(ctx context.Context, id, userID string) (model.Event, error) {
	return s.toggle(ctx, id, userID, ChangeLikeToggled, func(e *model.Event) *[]string {
		return &e.LikedBy
	})
}

// ToggleRsvp is ToggleLike for the rsvpedBy set.
func (s *Store) ToggleRsvp(ctx context.Context, id, userID string) (model.Event, error) {
	return s.toggle(ctx, id, userID, ChangeRsvpToggled, func(e *model.Event) *[]string {
		return &e.RsvpedBy
	})
}

func (s *Store) toggle(
	ctx context.Context,
	id, userID string,
	typ ChangeType,
	set func(*model.Event) *[]string,
) (model.Event, error) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Event{}, &NotFoundError{ID: id}
	}

	if s.user == nil {
		out := s.events[idx].Clone()
		s.mu.Unlock()
		return out, nil
	}
	if userID == "" {
		userID = s.user.ID
	}

	e := &s.events[idx]
	list := set(e)
	*list = toggleMember(*list, userID)
	e.UpdatedAt = s.timestamp()
	e.Normalize()

	out := e.Clone()
	persistErr := s.saveEvents(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		s.logPersistFailure(string(typ), id, persistErr)
	}

	s.notify(Change{
		Type:      typ,
		EventID:   id,
		UserID:    userID,
		Timestamp: s.now(),
		Payload:   out.Clone(),
	})

	return out, persistErr
}

func toggleMember(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	removed := false
	for _, s := range list {
		if s == v {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, v)
	}
	return out
}

// SetCurrentUser replaces the signed-in identity. Nil signs out and removes
// the persisted entry.
func (s *Store) SetCurrentUser(ctx context.Context, u *model.User) error {
	if u != nil {
		if err := s.check(u); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.user = u.Clone()
	persistErr := s.saveUser(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		s.logger.Error("failed to persist current user", zap.Error(persistErr))
	}

	c := Change{
		Type:      ChangeUserChanged,
		Timestamp: s.now(),
	}
	if u != nil {
		c.UserID = u.ID
		c.Payload = u.Clone()
	}
	s.notify(c)

	return persistErr
}

// Events returns a deep copy of the current list in insertion order.
func (s *Store) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) Event(id string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Event{}, false
	}
	return s.events[idx].Clone(), true
}

func (s *Store) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user.Clone()
}

// Ping checks the backing repo when it supports health checks.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.repo.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
