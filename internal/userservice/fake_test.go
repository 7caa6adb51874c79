package userservice

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store used by the service tests.
type memStore struct {
	mu    sync.Mutex
	users map[string]*User
	err   error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*User)}
}

func (s *memStore) Insert(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	for _, existing := range s.users {
		if existing.PersonalInfo.Email == u.PersonalInfo.Email {
			return ErrDuplicateEmail
		}
		if existing.PersonalInfo.Username == u.PersonalInfo.Username {
			return ErrDuplicateUsername
		}
	}

	u.ID = uuid.NewString()
	stored := *u
	s.users[u.ID] = &stored

	return nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.PersonalInfo.Email == email {
			found := *u
			return &found, nil
		}
	}

	return nil, ErrNotFound
}

func (s *memStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.PersonalInfo.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (s *memStore) AddOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}

	u.AccountInfo.TotalPosts += postDelta
	u.Blogs = append(u.Blogs, blogID)

	return nil
}

func (s *memStore) RemoveOwnedBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}

	u.AccountInfo.TotalPosts = max(u.AccountInfo.TotalPosts+postDelta, 0)
	u.Blogs = slices.DeleteFunc(u.Blogs, func(id string) bool { return id == blogID })

	return nil
}

func (s *memStore) AdjustTotalPosts(ctx context.Context, userID string, postDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}

	u.AccountInfo.TotalPosts += postDelta

	return nil
}

func (s *memStore) IncrementReadCount(ctx context.Context, username string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	for _, u := range s.users {
		if u.PersonalInfo.Username == username {
			u.AccountInfo.TotalReads += delta
			return nil
		}
	}

	return ErrNotFound
}

func (s *memStore) user(id string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.users[id]
}
