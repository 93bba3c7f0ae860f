package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publication state of a post.
type PostStatus string

// Possible post status values
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Post-specific validation errors
var (
	ErrEmptyPostID       = errors.New("post ID cannot be empty")
	ErrEmptyPostTitle    = errors.New("post title cannot be empty")
	ErrPostTitleTooLong  = errors.New("post title must be at most 200 characters long")
	ErrEmptyPostContent  = errors.New("post content cannot be empty")
	ErrEmptyPostAuthor   = errors.New("post author ID cannot be empty")
	ErrEmptyPostCategory = errors.New("post category ID cannot be empty")
	ErrNegativeCounter   = errors.New("post counters cannot be negative")
)

// Post represents a publishable content entity. Slug, Excerpt, ReadingTime,
// IsPublished, and PublishedAt are derived by the content pipeline on every
// save; they are never set directly by handlers.
//
// PublishedAt is monotonic: once set it is never cleared or recomputed,
// even if the post is later archived and re-published.
type Post struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	AuthorID     uuid.UUID  `json:"author_id"`
	CategoryID   uuid.UUID  `json:"category_id"`
	Tags         []string   `json:"tags"`
	Status       PostStatus `json:"status"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ViewCount    int        `json:"view_count"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	ReadingTime  int        `json:"reading_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewPost creates a new draft Post with the given title, content, author,
// and category. It generates a new UUID for the post ID and sets the
// creation/update timestamps. Slug and the other derived fields are left
// empty for the content pipeline to fill in before the first save.
// Returns an error if validation fails.
func NewPost(title, content string, authorID, categoryID uuid.UUID, tags []string) (*Post, error) {
	if tags == nil {
		tags = []string{}
	}

	post := &Post{
		ID:         uuid.New(),
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CategoryID: categoryID,
		Tags:       tags,
		Status:     PostStatusDraft,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}

	if p.Title == "" {
		return ErrEmptyPostTitle
	}
	if len(p.Title) > 200 {
		return ErrPostTitleTooLong
	}

	if p.Content == "" {
		return ErrEmptyPostContent
	}

	if p.AuthorID == uuid.Nil {
		return ErrEmptyPostAuthor
	}

	if p.CategoryID == uuid.Nil {
		return ErrEmptyPostCategory
	}

	if !isValidPostStatus(p.Status) {
		return ErrInvalidPostStatus
	}

	if p.ViewCount < 0 || p.LikeCount < 0 || p.CommentCount < 0 {
		return ErrNegativeCounter
	}

	return nil
}

// isValidPostStatus checks if the given status is a valid PostStatus.
func isValidPostStatus(status PostStatus) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	default:
		return false
	}
}
