package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store.
	// Returns ErrCategoryNameExists or ErrSlugExists on uniqueness
	// violations.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetBySlug retrieves a category by its slug.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// Update modifies an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category from the store by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
