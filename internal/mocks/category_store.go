package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, category *domain.Category) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetBySlugFn func(ctx context.Context, slug string) (*domain.Category, error)
	ListFn      func(ctx context.Context) ([]*domain.Category, error)
	UpdateFn    func(ctx context.Context, category *domain.Category) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by category ID
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	for _, existing := range m.Categories {
		if existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
		if existing.Slug == category.Slug {
			return store.ErrSlugExists
		}
	}

	copied := *category
	m.Categories[category.ID] = &copied
	return nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	category, exists := m.Categories[id]
	if !exists {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// GetBySlug implements the CategoryStore interface
func (m *MockCategoryStore) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	for _, category := range m.Categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update implements the CategoryStore interface
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}

	if _, exists := m.Categories[category.ID]; !exists {
		return store.ErrCategoryNotFound
	}

	copied := *category
	m.Categories[category.ID] = &copied
	return nil
}

// Delete implements the CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Categories[id]; !exists {
		return store.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}
