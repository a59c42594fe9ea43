// Package registry keeps the live game sessions of the network front ends.
// Each session is addressed by a generated ID so that stateless transports
// (MCP tool calls, reconnecting clients) can find their game again.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/t2048"
)

// ErrSessionNotFound is returned for IDs that are not registered.
var ErrSessionNotFound = errors.New("registry: session not found")

// SeedFunc returns the seed for a new game.
type SeedFunc func() int64

// TimeSeed seeds every game from the clock.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// FixedSeed returns a SeedFunc that uses seed when it is non-zero and the
// clock otherwise.
func FixedSeed(seed int64) SeedFunc {
	if seed == 0 {
		return TimeSeed
	}
	return func() int64 { return seed }
}

// SessionInfo contains metadata about a registered session.
type SessionInfo struct {
	ID        string
	CreatedAt time.Time
	Snapshot  t2048.Snapshot
}

type entry struct {
	session   *command.Session
	createdAt time.Time
}

// Registry is a concurrency-safe set of sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry
	seed     SeedFunc
	recorder command.Recorder
	logger   *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithSeed sets how new games are seeded.
func WithSeed(f SeedFunc) Option {
	return func(r *Registry) {
		r.seed = f
	}
}

// WithRecorder records the results of every session's game.
func WithRecorder(rec command.Recorder) Option {
	return func(r *Registry) {
		r.recorder = rec
	}
}

// WithLogger sets the logger handed to sessions.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]entry),
		seed:     TimeSeed,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Create starts a new game and registers its session.
func (r *Registry) Create() (string, *command.Session) {
	id := uuid.NewString()

	opts := []command.Option{
		command.WithID(id),
		command.WithLogger(r.logger),
	}
	if r.recorder != nil {
		opts = append(opts, command.WithRecorder(r.recorder))
	}
	session := command.NewSession(t2048.NewSeeded(r.seed()), opts...)

	r.mu.Lock()
	r.sessions[id] = entry{session: session, createdAt: time.Now()}
	r.mu.Unlock()

	r.logger.Debug("session created", "session", id)
	return id, session
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*command.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return e.session, nil
}

// Remove forgets a session. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// List returns information about all sessions, oldest first.
func (r *Registry) List() []SessionInfo {
	r.mu.RLock()
	result := make([]SessionInfo, 0, len(r.sessions))
	sessions := make([]*command.Session, 0, len(r.sessions))
	for id, e := range r.sessions {
		result = append(result, SessionInfo{ID: id, CreatedAt: e.createdAt})
		sessions = append(sessions, e.session)
	}
	r.mu.RUnlock()

	// Snapshots take the session lock; collect them outside the registry lock.
	for i, s := range sessions {
		result[i].Snapshot = s.Snapshot()
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
