package repo

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memUser struct {
	id    int
	email string
	hash  string
}

// MemoryRepository keeps everything in process memory. It backs the server
// when no database is configured, and the tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	users     map[string]memUser
	scenarios map[int]Scenario
	nextUser  int
	nextScen  int
	now       func() time.Time
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:     make(map[string]memUser),
		scenarios: make(map[int]Scenario),
		now:       time.Now,
	}
}

func (m *MemoryRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrDuplicate
	}
	m.nextUser++
	m.users[login] = memUser{id: m.nextUser, email: email, hash: passwordHash}
	return m.nextUser, nil
}

func (m *MemoryRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *MemoryRepository) SaveScenario(ctx context.Context, s Scenario) (Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, old := range m.scenarios {
		if old.UserID == s.UserID && old.Name == s.Name {
			old.Input = s.Input
			m.scenarios[id] = old
			return old, nil
		}
	}
	m.nextScen++
	s.ID = m.nextScen
	s.CreatedAt = m.now()
	m.scenarios[s.ID] = s
	return s, nil
}

func (m *MemoryRepository) ListScenarios(ctx context.Context, userID int) ([]Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Scenario{}
	for _, s := range m.scenarios {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) GetScenario(ctx context.Context, userID, id int) (Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scenarios[id]
	if !ok || s.UserID != userID {
		return Scenario{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryRepository) DeleteScenario(ctx context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scenarios[id]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(m.scenarios, id)
	return nil
}
