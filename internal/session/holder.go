// Package session holds the authenticated user and token for one client
// session. A Holder is created explicitly and passed to collaborators; it is
// loaded at session start and cleared on logout or when the backend rejects
// the token.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/preston-bernstein/season-weeks-service/internal/domain/users"
)

// ErrNoSession is returned by Token when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// State is a point-in-time copy of the session.
type State struct {
	ID        string      `json:"id"`
	User      *users.User `json:"user"`
	Token     string      `json:"token"`
	StartedAt time.Time   `json:"started_at"`
}

// Authenticated reports whether the state carries a token.
func (s State) Authenticated() bool {
	return s.Token != ""
}

// Listener is notified after every change.
type Listener func(State)

// Holder is the auth state container. It is safe for concurrent use.
type Holder struct {
	// writeMu orders state changes with their persistence.
	writeMu   sync.Mutex
	mu        sync.RWMutex
	state     State
	persister Persister
	now       func() time.Time

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Option customizes a Holder.
type Option func(*Holder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Holder) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHolder returns an empty holder. A nil persister keeps state in memory only.
func NewHolder(p Persister, opts ...Option) *Holder {
	h := &Holder{
		persister: p,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load restores a persisted session. A missing record leaves the holder empty.
func (h *Holder) Load() error {
	if h.persister == nil {
		return nil
	}
	rec, err := h.persister.Load()
	if errors.Is(err, ErrNotPersisted) {
		return nil
	}
	if err != nil {
		return err
	}
	h.set(State{
		ID:        rec.SessionID,
		User:      rec.User,
		Token:     rec.Token,
		StartedAt: rec.StartedAt,
	}, false)
	return nil
}

// Login starts a new session for user.
func (h *Holder) Login(user users.User, token string) error {
	st := State{
		ID:        uuid.NewString(),
		User:      &user,
		Token:     token,
		StartedAt: h.now().UTC(),
	}
	return h.set(st, true)
}

// UpdateUser replaces the user record and keeps the token.
func (h *Holder) UpdateUser(user users.User) error {
	return h.update(func(st State) (State, error) {
		if !st.Authenticated() {
			return st, ErrNoSession
		}
		st.User = &user
		return st, nil
	}, true)
}

// Logout ends the session and removes persisted state.
func (h *Holder) Logout() error {
	return h.set(State{}, true)
}

// Clear drops the session after the backend rejected it. Persistence errors
// are swallowed because the in-memory state is already gone.
func (h *Holder) Clear() {
	_ = h.Logout()
}

// State returns a copy of the current session.
func (h *Holder) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st := h.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Token implements oauth2.TokenSource.
func (h *Holder) Token() (*oauth2.Token, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state.Token == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: h.state.Token, TokenType: "Bearer"}, nil
}

// Subscribe registers fn for change notifications and returns an unsubscribe func.
func (h *Holder) Subscribe(fn Listener) func() {
	h.listenersMu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.listenersMu.Unlock()
	return func() {
		h.listenersMu.Lock()
		delete(h.listeners, id)
		h.listenersMu.Unlock()
	}
}

func (h *Holder) set(st State, persist bool) error {
	return h.update(func(State) (State, error) { return st, nil }, persist)
}

// update applies fn to the current state and persists the result before any
// other change can start. Listeners run after both locks are released.
func (h *Holder) update(fn func(State) (State, error), persist bool) error {
	h.writeMu.Lock()
	h.mu.Lock()
	st, err := fn(h.state)
	if err != nil {
		h.mu.Unlock()
		h.writeMu.Unlock()
		return err
	}
	h.state = st
	h.mu.Unlock()

	if persist && h.persister != nil {
		if st.Authenticated() {
			err = h.persister.Save(Record{
				SessionID: st.ID,
				User:      st.User,
				Token:     st.Token,
				StartedAt: st.StartedAt,
			})
		} else {
			err = h.persister.Delete()
		}
	}
	h.writeMu.Unlock()

	h.notify()
	return err
}

func (h *Holder) notify() {
	st := h.State()
	h.listenersMu.Lock()
	fns := make([]Listener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.listenersMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
