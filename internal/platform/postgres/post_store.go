package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/store"
)

// Unique constraint name from the posts table migration.
const postsSlugConstraint = "posts_slug_key"

// postColumns is the column list shared by every post SELECT. Scan order in
// scanPost must match.
const postColumns = `id, title, content, slug, excerpt, author_id, category_id, tags,
	status, is_published, published_at, view_count, like_count, comment_count,
	reading_time, created_at, updated_at`

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
// Tags are stored as a JSONB column and (un)marshaled at the store boundary.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create
// It saves a new post to the database, handling domain validation.
// Returns store.ErrSlugExists if the slug is already taken.
// Returns store.ErrInvalidEntity if the author or category does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	tags, err := marshalTags(post.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (id, title, content, slug, excerpt, author_id, category_id, tags,
			status, is_published, published_at, view_count, like_count, comment_count,
			reading_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Content,
		post.Slug,
		post.Excerpt,
		post.AuthorID,
		post.CategoryID,
		tags,
		post.Status,
		post.IsPublished,
		post.PublishedAt,
		post.ViewCount,
		post.LikeCount,
		post.CommentCount,
		post.ReadingTime,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, postsSlugConstraint) {
			log.Warn("duplicate slug during post creation",
				slog.String("post_id", post.ID.String()),
				slog.String("slug", post.Slug))
			return fmt.Errorf("%w: %v", store.ErrSlugExists, err)
		}

		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()),
			slog.String("author_id", post.AuthorID.String()))
		return MapError(err)
	}

	log.Info("post created successfully",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug),
		slog.String("status", string(post.Status)))
	return nil
}

// Update implements store.PostStore.Update
// It modifies an existing post.
// Returns store.ErrPostNotFound if the post does not exist.
// Returns store.ErrSlugExists when updating to a slug that already exists.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	tags, err := marshalTags(post.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET title = $2, content = $3, slug = $4, excerpt = $5, category_id = $6,
		    tags = $7, status = $8, is_published = $9, published_at = $10,
		    reading_time = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Content,
		post.Slug,
		post.Excerpt,
		post.CategoryID,
		tags,
		post.Status,
		post.IsPublished,
		post.PublishedAt,
		post.ReadingTime,
		post.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, postsSlugConstraint) {
			log.Warn("duplicate slug during post update",
				slog.String("post_id", post.ID.String()),
				slog.String("slug", post.Slug))
			return fmt.Errorf("%w: %v", store.ErrSlugExists, err)
		}

		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Debug("post not found during update",
				slog.String("post_id", post.ID.String()))
		}
		return err
	}

	log.Info("post updated successfully", slog.String("post_id", post.ID.String()))
	return nil
}

// GetByID implements store.PostStore.GetByID
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving post by ID", slog.String("post_id", id.String()))

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}

		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, MapError(err)
	}

	return post, nil
}

// GetBySlug implements store.PostStore.GetBySlug
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving post by slug", slog.String("slug", slug))

	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found by slug", slog.String("slug", slug))
			return nil, store.ErrPostNotFound
		}

		log.Error("failed to get post by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return post, nil
}

// FindBySlugExcept implements store.PostStore.FindBySlugExcept
// It looks for a different post already holding the given slug.
// Returns store.ErrPostNotFound when the slug is free.
func (s *PostgresPostStore) FindBySlugExcept(
	ctx context.Context,
	slug string,
	excludeID uuid.UUID,
) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND id <> $2`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, slug, excludeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}

		log.Error("failed to probe slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return post, nil
}

// List implements store.PostStore.List
// It retrieves posts matching the given options, newest first. Filters are
// combined with AND; zero-valued options are skipped.
func (s *PostgresPostStore) List(
	ctx context.Context,
	opts store.PostListOptions,
) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if opts.Status != "" {
		addCondition("status = $%d", opts.Status)
	}
	if opts.AuthorID != uuid.Nil {
		addCondition("author_id = $%d", opts.AuthorID)
	}
	if opts.CategoryID != uuid.Nil {
		addCondition("category_id = $%d", opts.CategoryID)
	}
	if opts.Tag != "" {
		// tags is JSONB; @> tests array containment.
		addCondition("tags @> $%d", fmt.Sprintf(`[%q]`, opts.Tag))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	args = append(args, opts.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Error("failed to scan post row", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating post rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return posts, nil
}

// Delete implements store.PostStore.Delete
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM posts WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Debug("post not found during delete", slog.String("post_id", id.String()))
		}
		return err
	}

	log.Info("post deleted successfully", slog.String("post_id", id.String()))
	return nil
}

// IncrementViewCount implements store.PostStore.IncrementViewCount
func (s *PostgresPostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return s.adjustCounter(ctx, id, "view_count = view_count + 1")
}

// IncrementLikeCount implements store.PostStore.IncrementLikeCount
func (s *PostgresPostStore) IncrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return s.adjustCounter(ctx, id, "like_count = like_count + 1")
}

// DecrementLikeCount implements store.PostStore.DecrementLikeCount
// The count saturates at zero rather than going negative.
func (s *PostgresPostStore) DecrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return s.adjustCounter(ctx, id, "like_count = GREATEST(like_count - 1, 0)")
}

// IncrementCommentCount implements store.PostStore.IncrementCommentCount
func (s *PostgresPostStore) IncrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return s.adjustCounter(ctx, id, "comment_count = comment_count + 1")
}

// DecrementCommentCount implements store.PostStore.DecrementCommentCount
// The count saturates at zero rather than going negative.
func (s *PostgresPostStore) DecrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return s.adjustCounter(ctx, id, "comment_count = GREATEST(comment_count - 1, 0)")
}

// adjustCounter runs a single-statement counter update so concurrent
// mutations cannot lose increments.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) adjustCounter(ctx context.Context, id uuid.UUID, setClause string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE posts SET ` + setClause + ` WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to adjust post counter",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// marshalTags encodes the tag list for the JSONB tags column.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}

	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	return encoded, nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var status string
	var tags []byte
	var publishedAt sql.NullTime

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.Excerpt,
		&post.AuthorID,
		&post.CategoryID,
		&tags,
		&status,
		&post.IsPublished,
		&publishedAt,
		&post.ViewCount,
		&post.LikeCount,
		&post.CommentCount,
		&post.ReadingTime,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Status = domain.PostStatus(status)

	if err := json.Unmarshal(tags, &post.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}

	return &post, nil
}
