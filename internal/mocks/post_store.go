package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, post *domain.Post) error
	UpdateFn           func(ctx context.Context, post *domain.Post) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetBySlugFn        func(ctx context.Context, slug string) (*domain.Post, error)
	FindBySlugExceptFn func(ctx context.Context, slug string, excludeID uuid.UUID) (*domain.Post, error)
	ListFn             func(ctx context.Context, opts store.PostListOptions) ([]*domain.Post, error)
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by post ID
	Posts map[uuid.UUID]*domain.Post
}

// NewMockPostStore creates a new mock store with initialized defaults
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{
		Posts: make(map[uuid.UUID]*domain.Post),
	}
}

var _ store.PostStore = (*MockPostStore)(nil)

// Create implements the PostStore interface
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	for _, existing := range m.Posts {
		if existing.Slug == post.Slug {
			return store.ErrSlugExists
		}
	}

	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

// Update implements the PostStore interface
func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, post)
	}

	if _, exists := m.Posts[post.ID]; !exists {
		return store.ErrPostNotFound
	}

	for _, existing := range m.Posts {
		if existing.ID != post.ID && existing.Slug == post.Slug {
			return store.ErrSlugExists
		}
	}

	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

// GetByID implements the PostStore interface
func (m *MockPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	post, exists := m.Posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}

	copied := *post
	return &copied, nil
}

// GetBySlug implements the PostStore interface
func (m *MockPostStore) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	for _, post := range m.Posts {
		if post.Slug == slug {
			copied := *post
			return &copied, nil
		}
	}
	return nil, store.ErrPostNotFound
}

// FindBySlugExcept implements the PostStore interface
func (m *MockPostStore) FindBySlugExcept(
	ctx context.Context,
	slug string,
	excludeID uuid.UUID,
) (*domain.Post, error) {
	if m.FindBySlugExceptFn != nil {
		return m.FindBySlugExceptFn(ctx, slug, excludeID)
	}

	for _, post := range m.Posts {
		if post.Slug == slug && post.ID != excludeID {
			return post, nil
		}
	}
	return nil, store.ErrPostNotFound
}

// List implements the PostStore interface
func (m *MockPostStore) List(
	ctx context.Context,
	opts store.PostListOptions,
) ([]*domain.Post, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, opts)
	}

	posts := make([]*domain.Post, 0, len(m.Posts))
	for _, post := range m.Posts {
		if opts.Status != "" && post.Status != opts.Status {
			continue
		}
		if opts.AuthorID != uuid.Nil && post.AuthorID != opts.AuthorID {
			continue
		}
		if opts.CategoryID != uuid.Nil && post.CategoryID != opts.CategoryID {
			continue
		}
		if opts.Tag != "" && !containsTag(post.Tags, opts.Tag) {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Delete implements the PostStore interface
func (m *MockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Posts[id]; !exists {
		return store.ErrPostNotFound
	}
	delete(m.Posts, id)
	return nil
}

// IncrementViewCount implements the PostStore interface
func (m *MockPostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.adjust(id, func(p *domain.Post) { p.ViewCount++ })
}

// IncrementLikeCount implements the PostStore interface
func (m *MockPostStore) IncrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return m.adjust(id, func(p *domain.Post) { p.LikeCount++ })
}

// DecrementLikeCount implements the PostStore interface
func (m *MockPostStore) DecrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return m.adjust(id, func(p *domain.Post) {
		if p.LikeCount > 0 {
			p.LikeCount--
		}
	})
}

// IncrementCommentCount implements the PostStore interface
func (m *MockPostStore) IncrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return m.adjust(id, func(p *domain.Post) { p.CommentCount++ })
}

// DecrementCommentCount implements the PostStore interface
func (m *MockPostStore) DecrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return m.adjust(id, func(p *domain.Post) {
		if p.CommentCount > 0 {
			p.CommentCount--
		}
	})
}

func (m *MockPostStore) adjust(id uuid.UUID, mutate func(*domain.Post)) error {
	post, exists := m.Posts[id]
	if !exists {
		return store.ErrPostNotFound
	}
	mutate(post)
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
