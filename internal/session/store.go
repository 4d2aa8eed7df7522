package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/grading"
)

var (
	ErrNotFound         = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not in session")
	ErrLocked           = errors.New("question already answered")
)

type Store interface {
	Create(kind Kind, modules []string, questions []bank.Question) (Session, error)
	Get(id string) (Session, error)
	// Answer grades the first answer to a question. Later answers return
	// ErrLocked and leave the stored result unchanged.
	Answer(id, questionID, letter string) (grading.Result, bank.Question, error)
	Delete(id string) error
}

const (
	DefaultTTL         = 2 * time.Hour
	DefaultMaxSessions = 10000
)

type memoryStore struct {
	mu       sync.RWMutex
	grader   grading.Grader
	sessions map[string]*Session
	now      func() time.Time
	ttl      time.Duration
	max      int
}

// Option configures the in-memory store.
type Option func(*memoryStore)

// WithTTL expires sessions ttl after creation. ttl <= 0 keeps the default.
func WithTTL(ttl time.Duration) Option {
	return func(m *memoryStore) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMaxSessions caps live sessions; the oldest is dropped to make room.
func WithMaxSessions(n int) Option {
	return func(m *memoryStore) {
		if n > 0 {
			m.max = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *memoryStore) { m.now = now }
}

// NewInMemoryStore keeps sessions in process memory. Sessions expire after
// the TTL and are swept on Create.
func NewInMemoryStore(g grading.Grader, opts ...Option) Store {
	if g == nil {
		g = grading.NewDefaultGrader()
	}
	m := &memoryStore{
		grader:   g,
		sessions: map[string]*Session{},
		now:      time.Now,
		ttl:      DefaultTTL,
		max:      DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *memoryStore) expired(s *Session, now time.Time) bool {
	return !now.Before(s.CreatedAt.Add(m.ttl))
}

// sweep drops expired sessions, then the oldest ones while at capacity.
// Callers hold the write lock.
func (m *memoryStore) sweep(now time.Time) {
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
		}
	}
	for len(m.sessions) >= m.max {
		var oldest *Session
		for _, s := range m.sessions {
			if oldest == nil || s.CreatedAt.Before(oldest.CreatedAt) {
				oldest = s
			}
		}
		delete(m.sessions, oldest.ID)
	}
}

func (m *memoryStore) Create(kind Kind, modules []string, questions []bank.Question) (Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		Modules:   append([]string(nil), modules...),
		Items:     make([]Item, len(questions)),
		CreatedAt: now,
	}
	for i, q := range questions {
		s.Items[i] = Item{Question: q, State: Unanswered}
	}

	m.mu.Lock()
	m.sweep(now)
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s.clone(), nil
}

// lookup returns a live session; expired ones read as missing.
func (m *memoryStore) lookup(id string) (*Session, bool) {
	s, ok := m.sessions[id]
	if !ok || m.expired(s, m.now()) {
		return nil, false
	}
	return s, true
}

func (m *memoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.lookup(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.clone(), nil
}

func (m *memoryStore) Answer(id, questionID, letter string) (grading.Result, bank.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lookup(id)
	if !ok {
		return grading.Result{}, bank.Question{}, ErrNotFound
	}
	for i := range s.Items {
		it := &s.Items[i]
		if string(it.Question.ID) != questionID {
			continue
		}
		if it.State == Graded {
			return *it.Result, it.Question, ErrLocked
		}
		res, err := m.grader.Grade(it.Question, letter)
		if err != nil {
			return grading.Result{}, it.Question, err
		}
		it.State = Graded
		it.Result = &res
		return res, it.Question, nil
	}
	return grading.Result{}, bank.Question{}, ErrQuestionNotFound
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lookup(id); !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}
