package blogservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store used by the service tests.
type memStore struct {
	mu      sync.Mutex
	blogs   map[string]*Blog
	authors map[string]AuthorInfo
	now     time.Time
	calls   int
}

func newMemStore() *memStore {
	return &memStore{
		blogs:   make(map[string]*Blog),
		authors: make(map[string]AuthorInfo),
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) ListLatestPublished(ctx context.Context, limit int) ([]Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	var blogs []Blog
	for _, b := range s.blogs {
		if !b.Draft {
			summary := *b
			summary.Content = nil
			summary.Author.PersonalInfo = s.authors[b.AuthorID]
			blogs = append(blogs, summary)
		}
	}

	sort.Slice(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })

	if len(blogs) > limit {
		blogs = blogs[:limit]
	}

	return blogs, nil
}

func (s *memStore) Insert(ctx context.Context, b *Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[b.AuthorID]; !ok {
		return ErrUserForeignKey
	}

	for _, existing := range s.blogs {
		if existing.BlogID == b.BlogID {
			return ErrDuplicateBlogID
		}
	}

	s.now = s.now.Add(time.Minute)
	b.ID = uuid.NewString()
	b.PublishedAt = s.now

	stored := *b
	s.blogs[b.ID] = &stored

	return nil
}

func (s *memStore) UpdateOwned(ctx context.Context, b *Blog) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.blogs {
		if existing.BlogID == b.BlogID && existing.AuthorID == b.AuthorID {
			wasDraft := existing.Draft

			existing.Title = b.Title
			existing.Des = b.Des
			existing.Banner = b.Banner
			existing.Content = b.Content
			existing.Tags = b.Tags
			existing.Draft = b.Draft

			b.ID = existing.ID
			b.PublishedAt = existing.PublishedAt
			return wasDraft, nil
		}
	}

	return false, ErrNotFoundOrUnauthorized
}

func (s *memStore) IncrementReads(ctx context.Context, blogID string, delta int) (*Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blogs {
		if b.BlogID == blogID {
			b.Activity.TotalReads += delta
			found := *b
			found.Author.PersonalInfo = s.authors[b.AuthorID]
			return &found, nil
		}
	}

	return nil, ErrRecordNotFound
}

func (s *memStore) GetOwned(ctx context.Context, blogID, authorID string) (*Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blogs {
		if b.BlogID == blogID && b.AuthorID == authorID {
			found := *b
			return &found, nil
		}
	}

	return nil, ErrNotFoundOrUnauthorized
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.blogs, id)

	return nil
}

func (s *memStore) reads(blogID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blogs {
		if b.BlogID == blogID {
			return b.Activity.TotalReads
		}
	}

	return -1
}

// fakeAuthors tracks ownership the way the user store does.
type fakeAuthors struct {
	mu         sync.Mutex
	posts      map[string]int
	blogs      map[string][]string
	failLink   bool
	failUnlink bool
}

func newFakeAuthors() *fakeAuthors {
	return &fakeAuthors{posts: make(map[string]int), blogs: make(map[string][]string)}
}

func (a *fakeAuthors) LinkBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failLink {
		return errors.New("user store unavailable")
	}

	a.posts[userID] += postDelta
	a.blogs[userID] = append(a.blogs[userID], blogID)

	return nil
}

func (a *fakeAuthors) UnlinkBlog(ctx context.Context, userID, blogID string, postDelta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failUnlink {
		return errors.New("user store unavailable")
	}

	a.posts[userID] += postDelta
	a.blogs[userID] = slices.DeleteFunc(a.blogs[userID], func(id string) bool { return id == blogID })

	return nil
}

func (a *fakeAuthors) AdjustPosts(ctx context.Context, userID string, postDelta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failLink {
		return errors.New("user store unavailable")
	}

	a.posts[userID] += postDelta

	return nil
}

func (a *fakeAuthors) count(userID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.posts[userID]
}

type fakeReads struct {
	mu    sync.Mutex
	reads map[string]int
	err   error
}

func (r *fakeReads) RecordRead(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	if r.reads == nil {
		r.reads = make(map[string]int)
	}
	r.reads[username]++

	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
