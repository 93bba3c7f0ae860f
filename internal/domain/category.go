package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors
var (
	ErrEmptyCategoryID     = errors.New("category ID cannot be empty")
	ErrEmptyCategoryName   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name must be at most 50 characters long")
)

// Category groups posts under a unique name. The slug is derived from the
// name the same way post slugs are derived from titles.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory creates a new Category with the given name and description.
// The slug is left empty for the caller to derive before saving.
// Returns an error if validation fails.
func NewCategory(name, description string) (*Category, error) {
	category := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
// Returns an error if any field fails validation.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 50 {
		return ErrCategoryNameTooLong
	}

	return nil
}
