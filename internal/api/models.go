package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// User is the authenticated user's public profile
	User UserResponse `json:"user"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint. The caller authenticates with the token being
// refreshed, so no request payload is needed.
type RefreshTokenResponse struct {
	AccessToken string `json:"token"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// UserResponse is the public view of a user. It never carries password
// material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user onto its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateUserRequest defines the payload for updating a user. Zero-valued
// fields are left unchanged. Role changes are only honored for admin
// callers.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role,omitempty"     validate:"omitempty,oneof=user moderator admin"`
}

// CreatePostRequest defines the payload for creating a post. Slug, excerpt,
// and reading time are derived server-side and cannot be supplied.
type CreatePostRequest struct {
	Title      string   `json:"title"       validate:"required,max=200"`
	Content    string   `json:"content"     validate:"required"`
	CategoryID string   `json:"category_id" validate:"required,uuid"`
	Tags       []string `json:"tags,omitempty"`
	Status     string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// UpdatePostRequest defines the payload for updating a post.
type UpdatePostRequest struct {
	Title      string   `json:"title"       validate:"required,max=200"`
	Content    string   `json:"content"     validate:"required"`
	CategoryID string   `json:"category_id" validate:"required,uuid"`
	Tags       []string `json:"tags,omitempty"`
	Status     string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// PostResponse is the wire representation of a post.
type PostResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	AuthorID     uuid.UUID  `json:"author_id"`
	CategoryID   uuid.UUID  `json:"category_id"`
	Tags         []string   `json:"tags"`
	Status       string     `json:"status"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ViewCount    int        `json:"view_count"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	ReadingTime  int        `json:"reading_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewPostResponse maps a domain post onto its wire representation.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Slug:         post.Slug,
		Excerpt:      post.Excerpt,
		AuthorID:     post.AuthorID,
		CategoryID:   post.CategoryID,
		Tags:         post.Tags,
		Status:       string(post.Status),
		IsPublished:  post.IsPublished,
		PublishedAt:  post.PublishedAt,
		ViewCount:    post.ViewCount,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		ReadingTime:  post.ReadingTime,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// PostListResponse is the paginated wrapper for post listings.
type PostListResponse struct {
	Posts  []PostResponse `json:"posts"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CategoryRequest defines the payload for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name"                  validate:"required,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CategoryResponse is the wire representation of a category.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryResponse maps a domain category onto its wire representation.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// UserListResponse is the paginated wrapper for user listings.
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
