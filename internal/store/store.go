// Package store holds the portal's application state: the cached collections
// of students and campuses, the reducer that updates them, and the thunks that
// talk to the backend.
package store

import (
	"context"
	"reflect"
	"sync"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/service/integration"
	"github.com/rs/zerolog"
)

// Slice names one observable part of State.
type Slice string

const (
	AllStudents Slice = "allStudents"
	AllCampuses Slice = "allCampuses"
)

type State struct {
	AllStudents []models.Student
	AllCampuses []models.Campus
}

func (s State) clone() State {
	return State{
		AllStudents: append([]models.Student(nil), s.AllStudents...),
		AllCampuses: append([]models.Campus(nil), s.AllCampuses...),
	}
}

// EventPublisher is notified after every successful edit.
type EventPublisher interface {
	PublishStudentEdited(ctx context.Context, event *models.StudentEditedEvent) error
	PublishCampusEdited(ctx context.Context, event *models.CampusEditedEvent) error
}

// Env is what a thunk gets to work with.
type Env struct {
	Dispatch func(Action)
	GetState func() State
	API      integration.APIClient
	Events   EventPublisher
	Logger   zerolog.Logger
}

// Thunk is a deferred unit of store-bound work.
type Thunk func(ctx context.Context, env Env) error

type Option func(*Store)

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Store) {
		s.events = p
	}
}

func WithInitialState(state State) Option {
	return func(s *Store) {
		s.state = state.clone()
	}
}

type Store struct {
	mu    sync.RWMutex
	state State

	subMu   sync.Mutex
	subs    map[Slice]map[int]func(State)
	nextSub int

	api    integration.APIClient
	events EventPublisher
	logger zerolog.Logger
}

func New(api integration.APIClient, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		subs:   make(map[Slice]map[int]func(State)),
		api:    api,
		logger: logger.With().Str("component", "store").Logger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetState returns a snapshot; callers may modify it freely.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch runs the thunk and returns its error. Thunks log through the
// request logger when ctx carries one.
func (s *Store) Dispatch(ctx context.Context, thunk Thunk) error {
	logger := s.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = *l
	}

	return thunk(ctx, Env{
		Dispatch: s.apply,
		GetState: s.GetState,
		API:      s.api,
		Events:   s.events,
		Logger:   logger,
	})
}

// Subscribe registers fn for changes to one slice. fn runs after the change
// is committed and receives the new state. The returned func unsubscribes.
func (s *Store) Subscribe(slice Slice, fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	if s.subs[slice] == nil {
		s.subs[slice] = make(map[int]func(State))
	}
	s.subs[slice][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs[slice], id)
		})
	}
}

func (s *Store) apply(action Action) {
	s.mu.Lock()
	prev := s.state
	next := reduce(prev.clone(), action)
	changed := !sliceEqual(prev, next, action.Slice())
	if changed {
		s.state = next
	}
	s.mu.Unlock()

	if !changed {
		return
	}

	s.logger.Debug().Str("slice", string(action.Slice())).Msg("State changed")
	s.notify(action.Slice())
}

func (s *Store) notify(slice Slice) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs[slice]))
	for _, fn := range s.subs[slice] {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	state := s.GetState()
	for _, fn := range fns {
		fn(state)
	}
}

func sliceEqual(a, b State, slice Slice) bool {
	switch slice {
	case AllStudents:
		return reflect.DeepEqual(a.AllStudents, b.AllStudents)
	case AllCampuses:
		return reflect.DeepEqual(a.AllCampuses, b.AllCampuses)
	default:
		return true
	}
}
