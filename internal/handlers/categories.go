package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Categories groups the category handlers.
//
// TODO: mutations currently require only a valid token; tighten them to
// admin-only once role management ships.
type Categories struct {
	categories store.CategoryStore
}

// NewCategories creates the Categories handler group.
func NewCategories(categories store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

type categoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// List returns all categories, newest first.
// GET /api/categories
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		respondInternal(w, "list categories failed", err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

// Get returns a single category.
// GET /api/categories/{id}
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	category, ok := h.load(w, r)
	if !ok {
		return
	}
	respondData(w, http.StatusOK, category)
}

// Create adds a category. The slug is derived from the name.
// POST /api/categories
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := categorySchema.validate(map[string]string{
		"name": in.Name, "description": in.Description,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	name := strings.TrimSpace(in.Name)
	category := &models.Category{
		Name:        name,
		Slug:        slug.Generate(name),
		Description: in.Description,
		Color:       in.Color,
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	created, err := h.categories.Create(category)
	if errors.Is(err, store.ErrDuplicateCategoryName) {
		respondError(w, http.StatusBadRequest, "Category with this name already exists")
		return
	}
	if err != nil {
		respondInternal(w, "create category failed", err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// Update renames a category. The slug is re-derived from the new name;
// color only changes when one is supplied.
// PUT /api/categories/{id}
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	category, ok := h.load(w, r)
	if !ok {
		return
	}

	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := categorySchema.validate(map[string]string{
		"name": in.Name, "description": in.Description,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	name := strings.TrimSpace(in.Name)
	category.Name = name
	category.Slug = slug.Generate(name)
	category.Description = in.Description
	if in.Color != "" {
		category.Color = in.Color
	}

	err := h.categories.Update(category)
	if errors.Is(err, store.ErrDuplicateCategoryName) {
		respondError(w, http.StatusBadRequest, "Category with this name already exists")
		return
	}
	if err != nil {
		respondInternal(w, "update category failed", err)
		return
	}

	respondData(w, http.StatusOK, category)
}

// Delete removes a category. Posts referencing it are left in place and
// simply report a null category from then on.
// DELETE /api/categories/{id}
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	category, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(category.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		respondInternal(w, "delete category failed", err)
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"message": "Category deleted successfully"})
}

// load fetches the category named in the URL, responding 404 on a
// malformed or unknown id.
func (h *Categories) load(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondInternal(w, "load category failed", err)
		return nil, false
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	return category, true
}
