package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lamev/scribe-api/internal/api/shared"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/service/content"
	"github.com/lamev/scribe-api/internal/store"
)

// CategoryHandler handles category-related API requests. Reads are public;
// writes sit behind the moderator middleware in the router.
type CategoryHandler struct {
	categories store.CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categories store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data: "+err.Error())
		return
	}
	category.Slug = content.Slugify(category.Name)

	if err := h.categories.Create(r.Context(), category); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewCategoryResponse(category))
}

// Get handles GET /api/categories/{idOrSlug}. The parameter is treated as
// an ID when it parses as a UUID and as a slug otherwise.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "idOrSlug")
	if param == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Category identifier is required")
		return
	}

	var category *domain.Category
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		category, err = h.categories.GetByID(r.Context(), id)
	} else {
		category, err = h.categories.GetBySlug(r.Context(), param)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCategoryResponse(category))
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list categories", err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, NewCategoryResponse(category))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Update handles PUT /api/categories/{id}. A renamed category gets a fresh
// slug derived from the new name.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if req.Name != category.Name {
		category.Slug = content.Slugify(req.Name)
	}
	category.Name = req.Name
	category.Description = req.Description

	if err := h.categories.Update(r.Context(), category); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCategoryResponse(category))
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
