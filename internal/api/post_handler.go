package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/api/shared"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/service/content"
	"github.com/lamev/scribe-api/internal/store"
)

// PostHandler handles post-related API requests. All writes go through the
// content pipeline so derived fields and slug uniqueness are enforced on
// every path.
type PostHandler struct {
	posts    store.PostStore
	pipeline *content.PostPipeline
}

// NewPostHandler creates a new PostHandler with the given dependencies.
func NewPostHandler(posts store.PostStore, pipeline *content.PostPipeline) *PostHandler {
	return &PostHandler{
		posts:    posts,
		pipeline: pipeline,
	}
}

// Create handles POST /api/posts. Requires authentication; the author is
// always the caller.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id format")
		return
	}

	post, err := domain.NewPost(req.Title, req.Content, principal.ID, categoryID, req.Tags)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid post data: "+err.Error())
		return
	}

	if req.Status != "" {
		post.Status = domain.PostStatus(req.Status)
	}

	saved, err := h.pipeline.Save(r.Context(), post, nil)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewPostResponse(saved))
}

// Get handles GET /api/posts/{idOrSlug}. The parameter is treated as an ID
// when it parses as a UUID and as a slug otherwise. Each successful fetch
// of a published post increments its view count. Unpublished posts are
// visible only to their author and to moderators, and surface as 404 to
// everyone else.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	param := chi.URLParam(r, "idOrSlug")
	if param == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Post identifier is required")
		return
	}

	var post *domain.Post
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		post, err = h.posts.GetByID(r.Context(), id)
	} else {
		post, err = h.posts.GetBySlug(r.Context(), param)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if !post.IsPublished && !h.canView(r, post) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if post.IsPublished {
		if err := h.pipeline.IncrementViewCount(r.Context(), post.ID); err != nil {
			// A lost view count should not fail the read.
			log.Warn("failed to increment view count",
				"error", err, "post_id", post.ID)
		} else {
			post.ViewCount++
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPostResponse(post))
}

// List handles GET /api/posts. Anonymous callers and regular users see
// published posts only, except that authors filtering on their own
// author_id see all of their posts. Moderators and admins see everything.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())

	limit, offset := getPagination(r)
	opts := store.PostListOptions{
		Status: domain.PostStatus(r.URL.Query().Get("status")),
		Tag:    r.URL.Query().Get("tag"),
		Limit:  limit,
		Offset: offset,
	}

	if raw := r.URL.Query().Get("author_id"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid author_id format")
			return
		}
		opts.AuthorID = authorID
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id format")
			return
		}
		opts.CategoryID = categoryID
	}

	if !canListUnpublished(principal, opts.AuthorID) {
		opts.Status = domain.PostStatusPublished
	}

	posts, err := h.posts.List(r.Context(), opts)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list posts", err)
		return
	}

	response := PostListResponse{
		Posts:  make([]PostResponse, 0, len(posts)),
		Limit:  limit,
		Offset: offset,
	}
	for _, post := range posts {
		response.Posts = append(response.Posts, NewPostResponse(post))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Update handles PUT /api/posts/{id}. The author, moderators, and admins
// may update a post.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	previous, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if previous.AuthorID != principal.ID &&
		!principal.Role.In(domain.RoleModerator, domain.RoleAdmin) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category_id format")
		return
	}

	post := *previous
	post.Title = req.Title
	post.Content = req.Content
	post.CategoryID = categoryID
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Status != "" {
		post.Status = domain.PostStatus(req.Status)
	}

	// A changed title regenerates the slug; the pipeline refreshes the
	// other derived fields unconditionally.
	if post.Title != previous.Title {
		post.Slug = ""
	}
	if post.Content != previous.Content {
		post.Excerpt = ""
	}

	saved, err := h.pipeline.Save(r.Context(), &post, previous)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPostResponse(saved))
}

// Delete handles DELETE /api/posts/{id}. Only the author and admins may
// delete a post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if post.AuthorID != principal.ID && principal.Role != domain.RoleAdmin {
		shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like handles POST /api/posts/{id}/like.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.adjustLike(w, r, h.pipeline.IncrementLikeCount)
}

// Unlike handles DELETE /api/posts/{id}/like. Unliking a post with zero
// likes succeeds; the count saturates at zero.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.adjustLike(w, r, h.pipeline.DecrementLikeCount)
}

func (h *PostHandler) adjustLike(
	w http.ResponseWriter,
	r *http.Request,
	mutate func(ctx context.Context, id uuid.UUID) error,
) {
	if _, ok := getPrincipal(w, r); !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := mutate(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPostResponse(post))
}

// canView reports whether the caller may see an unpublished post.
func (h *PostHandler) canView(r *http.Request, post *domain.Post) bool {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		return false
	}
	return principal.ID == post.AuthorID ||
		principal.Role.In(domain.RoleModerator, domain.RoleAdmin)
}

// canListUnpublished reports whether the caller may list posts in any
// status: moderators and admins always, authors for their own posts.
func canListUnpublished(principal *domain.User, authorFilter uuid.UUID) bool {
	if principal == nil {
		return false
	}
	if principal.Role.In(domain.RoleModerator, domain.RoleAdmin) {
		return true
	}
	return authorFilter != uuid.Nil && authorFilter == principal.ID
}
