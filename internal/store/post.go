package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/domain"
)

// PostListOptions narrows a post listing. Zero values mean "no filter".
type PostListOptions struct {
	Status     domain.PostStatus
	AuthorID   uuid.UUID
	CategoryID uuid.UUID
	Tag        string
	Limit      int
	Offset     int
}

// PostStore defines the interface for post data persistence.
//
// The counter methods are single-statement atomic updates at the storage
// level. They are the preferred way to mutate counters: a read-modify-write
// through Update can lose concurrent increments.
type PostStore interface {
	// Create saves a new post to the store.
	// Returns ErrSlugExists if the slug is already taken.
	// Returns validation errors from the domain Post if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// Update modifies an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	// Returns ErrSlugExists when updating to a slug that already exists.
	Update(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// GetBySlug retrieves a post by its slug.
	// Returns ErrPostNotFound if the post does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)

	// FindBySlugExcept retrieves a post with the given slug whose ID differs
	// from excludeID. Used by the pipeline's pre-save collision probe.
	// Returns ErrPostNotFound when no such post exists.
	FindBySlugExcept(ctx context.Context, slug string, excludeID uuid.UUID) (*domain.Post, error)

	// List retrieves posts matching the given options, ordered by creation
	// time, newest first. Returns an empty slice when nothing matches.
	List(ctx context.Context, opts PostListOptions) ([]*domain.Post, error)

	// Delete removes a post from the store by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount atomically adds one to the post's view count.
	// Returns ErrPostNotFound if the post does not exist.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// IncrementLikeCount atomically adds one to the post's like count.
	// Returns ErrPostNotFound if the post does not exist.
	IncrementLikeCount(ctx context.Context, id uuid.UUID) error

	// DecrementLikeCount atomically subtracts one from the post's like
	// count, saturating at zero. Decrementing a zero count is not an error.
	// Returns ErrPostNotFound if the post does not exist.
	DecrementLikeCount(ctx context.Context, id uuid.UUID) error

	// IncrementCommentCount atomically adds one to the post's comment count.
	// Returns ErrPostNotFound if the post does not exist.
	IncrementCommentCount(ctx context.Context, id uuid.UUID) error

	// DecrementCommentCount atomically subtracts one from the post's
	// comment count, saturating at zero.
	// Returns ErrPostNotFound if the post does not exist.
	DecrementCommentCount(ctx context.Context, id uuid.UUID) error
}
