package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/store"
)

// Unique constraint names from the categories table migration.
const (
	categoriesNameConstraint = "categories_name_key"
	categoriesSlugConstraint = "categories_slug_key"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
// Returns store.ErrCategoryNameExists or store.ErrSlugExists on unique violations.
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return err
	}

	query := `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, categoriesNameConstraint) {
			log.Warn("duplicate name during category creation",
				slog.String("name", category.Name))
			return fmt.Errorf("%w: %v", store.ErrCategoryNameExists, err)
		}
		if IsUniqueViolation(err, categoriesSlugConstraint) {
			log.Warn("duplicate slug during category creation",
				slog.String("slug", category.Slug))
			return fmt.Errorf("%w: %v", store.ErrSlugExists, err)
		}

		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return MapError(err)
	}

	log.Info("category created successfully",
		slog.String("category_id", category.ID.String()),
		slog.String("slug", category.Slug))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.String("category_id", id.String()))
			return nil, store.ErrCategoryNotFound
		}

		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.String("category_id", id.String()))
		return nil, MapError(err)
	}

	return category, nil
}

// GetBySlug implements store.CategoryStore.GetBySlug
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		WHERE slug = $1
	`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found by slug", slog.String("slug", slug))
			return nil, store.ErrCategoryNotFound
		}

		log.Error("failed to get category by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return category, nil
}

// List implements store.CategoryStore.List
// It retrieves all categories ordered by name.
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating category rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return categories, nil
}

// Update implements store.CategoryStore.Update
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during update",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return err
	}

	category.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, categoriesNameConstraint) {
			log.Warn("duplicate name during category update",
				slog.String("name", category.Name))
			return fmt.Errorf("%w: %v", store.ErrCategoryNameExists, err)
		}
		if IsUniqueViolation(err, categoriesSlugConstraint) {
			log.Warn("duplicate slug during category update",
				slog.String("slug", category.Slug))
			return fmt.Errorf("%w: %v", store.ErrSlugExists, err)
		}

		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		return err
	}

	log.Info("category updated successfully", slog.String("category_id", category.ID.String()))
	return nil
}

// Delete implements store.CategoryStore.Delete
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM categories WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.String("category_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		return err
	}

	log.Info("category deleted successfully", slog.String("category_id", id.String()))
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &category, nil
}
