// Package content implements the save-time pipeline for publishable posts:
// slug, excerpt, and reading-time derivation, the publish-state transition,
// slug uniqueness enforcement, and the counter mutators.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/store"
)

// PostPipeline runs the transformation and invariant enforcement that every
// post passes through immediately before persisting.
type PostPipeline struct {
	posts    store.PostStore
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing
}

// NewPostPipeline creates a PostPipeline backed by the given post store.
// If logger is nil, a default logger will be used.
func NewPostPipeline(posts store.PostStore, log *slog.Logger) *PostPipeline {
	if posts == nil {
		panic("posts store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostPipeline{
		posts:    posts,
		logger:   log.With(slog.String("component", "post_pipeline")),
		timeFunc: time.Now,
	}
}

// PrepareForSave applies the pure pre-persist transformation:
//
//  1. Derive the slug from the title when empty.
//  2. Derive the excerpt from the content when empty.
//  3. Recompute the reading time from the content.
//  4. On a transition into published, set PublishedAt once and mirror the
//     status into IsPublished. PublishedAt is never overwritten after it
//     has been set, even across archive/re-publish cycles.
//
// previous is the stored state for updates and nil for creates.
func (p *PostPipeline) PrepareForSave(post *domain.Post, previous *domain.Post) {
	now := p.timeFunc().UTC()

	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
		if post.Slug == "" {
			// Titles made entirely of stripped punctuation still need a
			// non-empty slug once saved.
			post.Slug = fmt.Sprintf("post-%d", now.UnixMilli())
		}
	}

	if post.Excerpt == "" {
		post.Excerpt = deriveExcerpt(post.Content)
	}

	post.ReadingTime = readingTime(post.Content)

	// Carry forward an already-set publication timestamp before deciding
	// whether this save is the publishing transition.
	if post.PublishedAt == nil && previous != nil && previous.PublishedAt != nil {
		publishedAt := *previous.PublishedAt
		post.PublishedAt = &publishedAt
	}

	post.IsPublished = post.Status == domain.PostStatusPublished
	if post.IsPublished && post.PublishedAt == nil {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}

	post.UpdatedAt = now
}

// EnsureUniqueSlug probes the store for another post holding the candidate
// slug and, on collision, disambiguates with a timestamp suffix. It must
// run after PrepareForSave has produced the candidate slug and before the
// post is committed.
//
// The probe is a latency optimization, not the correctness guarantee: a
// concurrent writer can still take the slug between the probe and the
// commit, in which case the storage-level unique index rejects the save
// with store.ErrSlugExists.
func (p *PostPipeline) EnsureUniqueSlug(
	ctx context.Context,
	post *domain.Post,
	previous *domain.Post,
) error {
	// Only a changed slug can introduce a collision.
	if previous != nil && previous.Slug == post.Slug {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, p.logger)

	_, err := p.posts.FindBySlugExcept(ctx, post.Slug, post.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil // Slug is free
		}
		return fmt.Errorf("slug collision probe failed: %w", err)
	}

	disambiguated := fmt.Sprintf("%s-%d", post.Slug, p.timeFunc().UnixMilli())
	log.Debug("slug collision detected, disambiguating",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug),
		slog.String("disambiguated", disambiguated))
	post.Slug = disambiguated

	return nil
}

// Save runs the full pipeline and persists the post: PrepareForSave, the
// slug uniqueness pass, then create or update depending on whether a
// previous state exists. A duplicate-slug rejection from the store
// surfaces as store.ErrSlugExists; resubmission re-runs the pipeline and
// is the caller's retry path.
func (p *PostPipeline) Save(
	ctx context.Context,
	post *domain.Post,
	previous *domain.Post,
) (*domain.Post, error) {
	p.PrepareForSave(post, previous)

	if err := p.EnsureUniqueSlug(ctx, post, previous); err != nil {
		return nil, err
	}

	var err error
	if previous == nil {
		err = p.posts.Create(ctx, post)
	} else {
		err = p.posts.Update(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Counter mutators. These delegate to single-statement atomic updates in
// the store; decrements saturate at zero there.

// IncrementViewCount adds one to the post's view count.
func (p *PostPipeline) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return p.posts.IncrementViewCount(ctx, id)
}

// IncrementLikeCount adds one to the post's like count.
func (p *PostPipeline) IncrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return p.posts.IncrementLikeCount(ctx, id)
}

// DecrementLikeCount subtracts one from the post's like count, stopping at
// zero. Decrementing a zero count is not an error.
func (p *PostPipeline) DecrementLikeCount(ctx context.Context, id uuid.UUID) error {
	return p.posts.DecrementLikeCount(ctx, id)
}

// IncrementCommentCount adds one to the post's comment count.
func (p *PostPipeline) IncrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return p.posts.IncrementCommentCount(ctx, id)
}

// DecrementCommentCount subtracts one from the post's comment count,
// stopping at zero.
func (p *PostPipeline) DecrementCommentCount(ctx context.Context, id uuid.UUID) error {
	return p.posts.DecrementCommentCount(ctx, id)
}
