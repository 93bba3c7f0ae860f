package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamev/scribe-api/internal/api/shared"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/mocks"
	"github.com/lamev/scribe-api/internal/service/content"
)

func newTestPostHandler() (*PostHandler, *mocks.MockPostStore) {
	posts := mocks.NewMockPostStore()
	return NewPostHandler(posts, content.NewPostPipeline(posts, nil)), posts
}

func seedPost(t *testing.T, posts *mocks.MockPostStore, authorID uuid.UUID, status domain.PostStatus) *domain.Post {
	t.Helper()

	post, err := domain.NewPost("Seeded Post "+uuid.NewString(), "Seeded content.",
		authorID, uuid.New(), nil)
	require.NoError(t, err)
	post.Status = status
	post.Slug = content.Slugify(post.Title)
	post.IsPublished = status == domain.PostStatusPublished

	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func asPrincipal(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(shared.WithPrincipal(req.Context(), user))
}

func routedRequest(req *http.Request, param, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestPostCreate(t *testing.T) {
	t.Parallel()

	author := &domain.User{
		ID: uuid.New(), Email: "a@example.com", Username: "author",
		Role: domain.RoleUser, IsActive: true,
	}

	t.Run("creates a draft with derived fields", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestPostHandler()
		body := `{
			"title": "My First Post!",
			"content": "Hello readers, welcome to the blog.",
			"category_id": "` + uuid.NewString() + `"
		}`

		rec := httptest.NewRecorder()
		req := asPrincipal(httptest.NewRequest(http.MethodPost, "/api/posts",
			strings.NewReader(body)), author)

		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "my-first-post", resp.Slug)
		assert.Equal(t, string(domain.PostStatusDraft), resp.Status)
		assert.Equal(t, author.ID, resp.AuthorID)
		assert.False(t, resp.IsPublished)
		assert.Nil(t, resp.PublishedAt)
		assert.NotEmpty(t, resp.Excerpt)
		assert.Equal(t, 1, resp.ReadingTime)
	})

	t.Run("publishing on create stamps PublishedAt", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestPostHandler()
		body := `{
			"title": "Going Live Immediately",
			"content": "Short but public.",
			"category_id": "` + uuid.NewString() + `",
			"status": "published"
		}`

		rec := httptest.NewRecorder()
		req := asPrincipal(httptest.NewRequest(http.MethodPost, "/api/posts",
			strings.NewReader(body)), author)

		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsPublished)
		assert.NotNil(t, resp.PublishedAt)
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestPostHandler()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{}`))

		handler.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPostGet(t *testing.T) {
	t.Parallel()

	t.Run("published post is public and counts the view", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusPublished)

		rec := httptest.NewRecorder()
		req := routedRequest(httptest.NewRequest(http.MethodGet, "/api/posts/"+post.Slug, nil),
			"idOrSlug", post.Slug)

		handler.Get(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, post.ID, resp.ID)
		assert.Equal(t, 1, resp.ViewCount)

		stored, err := posts.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ViewCount)
	})

	t.Run("fetch by ID works too", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusPublished)

		rec := httptest.NewRecorder()
		req := routedRequest(
			httptest.NewRequest(http.MethodGet, "/api/posts/"+post.ID.String(), nil),
			"idOrSlug", post.ID.String())

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("draft is hidden from strangers", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusDraft)

		rec := httptest.NewRecorder()
		req := routedRequest(httptest.NewRequest(http.MethodGet, "/api/posts/"+post.Slug, nil),
			"idOrSlug", post.Slug)

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("draft is visible to its author without counting a view", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		author := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}
		post := seedPost(t, posts, author.ID, domain.PostStatusDraft)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodGet, "/api/posts/"+post.Slug, nil),
			"idOrSlug", post.Slug), author)

		handler.Get(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := posts.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.ViewCount)
	})

	t.Run("draft is visible to moderators", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusDraft)
		moderator := &domain.User{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodGet, "/api/posts/"+post.Slug, nil),
			"idOrSlug", post.Slug), moderator)

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPostList(t *testing.T) {
	t.Parallel()

	t.Run("anonymous callers see published posts only", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		published := seedPost(t, posts, uuid.New(), domain.PostStatusPublished)
		seedPost(t, posts, uuid.New(), domain.PostStatusDraft)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)

		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Posts, 1)
		assert.Equal(t, published.ID, resp.Posts[0].ID)
	})

	t.Run("authors see their own drafts when filtering on themselves", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		author := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}
		seedPost(t, posts, author.ID, domain.PostStatusDraft)
		seedPost(t, posts, author.ID, domain.PostStatusPublished)

		rec := httptest.NewRecorder()
		req := asPrincipal(httptest.NewRequest(http.MethodGet,
			"/api/posts?author_id="+author.ID.String(), nil), author)

		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Posts, 2)
	})

	t.Run("moderators see everything", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		seedPost(t, posts, uuid.New(), domain.PostStatusDraft)
		seedPost(t, posts, uuid.New(), domain.PostStatusPublished)
		moderator := &domain.User{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}

		rec := httptest.NewRecorder()
		req := asPrincipal(httptest.NewRequest(http.MethodGet, "/api/posts", nil), moderator)

		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Posts, 2)
	})
}

func TestPostUpdate(t *testing.T) {
	t.Parallel()

	t.Run("author can update and the slug follows the title", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		author := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}
		post := seedPost(t, posts, author.ID, domain.PostStatusDraft)

		body := `{
			"title": "A Brand New Title",
			"content": "Rewritten content.",
			"category_id": "` + post.CategoryID.String() + `"
		}`
		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/posts/"+post.ID.String(),
				strings.NewReader(body)),
			"id", post.ID.String()), author)

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "a-brand-new-title", resp.Slug)
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusDraft)
		stranger := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}

		body := `{
			"title": "Hijacked",
			"content": "Nope.",
			"category_id": "` + post.CategoryID.String() + `"
		}`
		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/posts/"+post.ID.String(),
				strings.NewReader(body)),
			"id", post.ID.String()), stranger)

		handler.Update(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("moderators can update any post", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusDraft)
		moderator := &domain.User{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}

		body := `{
			"title": "Moderated Title",
			"content": "Cleaned up.",
			"category_id": "` + post.CategoryID.String() + `"
		}`
		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/posts/"+post.ID.String(),
				strings.NewReader(body)),
			"id", post.ID.String()), moderator)

		handler.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPostDelete(t *testing.T) {
	t.Parallel()

	t.Run("author can delete", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		author := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}
		post := seedPost(t, posts, author.ID, domain.PostStatusDraft)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String(), nil),
			"id", post.ID.String()), author)

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		_, err := posts.GetByID(context.Background(), post.ID)
		assert.Error(t, err)
	})

	t.Run("moderators cannot delete other people's posts", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusDraft)
		moderator := &domain.User{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String(), nil),
			"id", post.ID.String()), moderator)

		handler.Delete(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPostLikes(t *testing.T) {
	t.Parallel()

	liker := &domain.User{ID: uuid.New(), Role: domain.RoleUser, IsActive: true}

	t.Run("like increments the count", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusPublished)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPost, "/api/posts/"+post.ID.String()+"/like", nil),
			"id", post.ID.String()), liker)

		handler.Like(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.LikeCount)
	})

	t.Run("unlike at zero stays at zero", func(t *testing.T) {
		t.Parallel()

		handler, posts := newTestPostHandler()
		post := seedPost(t, posts, uuid.New(), domain.PostStatusPublished)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodDelete, "/api/posts/"+post.ID.String()+"/like", nil),
			"id", post.ID.String()), liker)

		handler.Unlike(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp PostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.LikeCount)
	})
}
