package user

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used by handler tests.
type Memory struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[int64]User)}
}

func (m *Memory) Create(_ context.Context, u *User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, ErrEmailTaken
		}
	}

	m.seq++
	stored := *u
	stored.ID = m.seq
	m.users[stored.ID] = stored
	return stored.ID, nil
}

func (m *Memory) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
