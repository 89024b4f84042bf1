package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// defaultPageSize is the post list page size when none is requested.
const defaultPageSize = 10

// Posts groups the post and comment handlers.
type Posts struct {
	posts      store.PostStore
	categories store.CategoryStore
}

// NewPosts creates the Posts handler group.
func NewPosts(posts store.PostStore, categories store.CategoryStore) *Posts {
	return &Posts{posts: posts, categories: categories}
}

// postInput is the request body shared by create and update.
type postInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	CategoryID    string   `json:"categoryId"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
}

func (in *postInput) values() map[string]string {
	return map[string]string{
		"title":      in.Title,
		"content":    in.Content,
		"categoryId": in.CategoryID,
		"excerpt":    in.Excerpt,
	}
}

// List returns one page of published posts, newest first, with author
// and category populated.
// GET /api/posts?page=&limit=
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageSize)

	posts, total, err := h.posts.ListPublished(page, limit)
	if err != nil {
		respondInternal(w, "list posts failed", err)
		return
	}

	respondOK(w, http.StatusOK, map[string]any{
		"data": posts,
		"pagination": map[string]any{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// Get returns a fully populated post and counts the view. The increment
// happens on every successful fetch, whoever the caller is.
// GET /api/posts/{id}
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "load post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	views, err := h.posts.IncrementViews(id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondInternal(w, "increment views failed", err)
		return
	}
	if err == nil {
		post.ViewCount = views
	}

	respondData(w, http.StatusOK, post)
}

// Create publishes a new post authored by the caller.
// POST /api/posts
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in postInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := postSchema.validate(in.values()); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	categoryID, ok := h.requireCategory(w, in.CategoryID)
	if !ok {
		return
	}

	post := &models.Post{
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		CategoryID:    categoryID,
		AuthorID:      userID,
		Tags:          in.Tags,
		FeaturedImage: in.FeaturedImage,
		IsPublished:   true,
	}
	if post.FeaturedImage == "" {
		post.FeaturedImage = models.DefaultFeaturedImage
	}

	created, err := h.posts.Create(post)
	if err != nil {
		respondInternal(w, "create post failed", err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// Update rewrites a post's fields. Only the author may update; the
// store is never touched on an authorization failure.
// PUT /api/posts/{id}
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	post, ok := h.loadOwned(w, r, userID, "Not authorized to update this post")
	if !ok {
		return
	}

	var in postInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := postSchema.validate(in.values()); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	categoryID, ok := h.requireCategory(w, in.CategoryID)
	if !ok {
		return
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.CategoryID = categoryID
	post.Tags = in.Tags
	post.FeaturedImage = in.FeaturedImage

	updated, err := h.posts.Update(post)
	if err != nil {
		respondInternal(w, "update post failed", err)
		return
	}

	respondData(w, http.StatusOK, updated)
}

// Delete removes a post. Only the author may delete.
// DELETE /api/posts/{id}
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	post, ok := h.loadOwned(w, r, userID, "Not authorized to delete this post")
	if !ok {
		return
	}

	if err := h.posts.Delete(post.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		respondInternal(w, "delete post failed", err)
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"message": "Post deleted successfully"})
}

// AddComment appends a comment to a post and returns the post with the
// new comment populated.
// POST /api/posts/{id}/comments
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "Comment content is required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.posts.AddComment(id, userID, content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondInternal(w, "add comment failed", err)
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil || post == nil {
		respondInternal(w, "reload post failed", err)
		return
	}

	respondData(w, http.StatusCreated, post)
}

// loadOwned fetches the post named in the URL and checks the caller is
// its author. Responds and returns ok=false on any failure.
func (h *Posts) loadOwned(w http.ResponseWriter, r *http.Request, userID uuid.UUID, forbiddenMsg string) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "load post failed", err)
		return nil, false
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	if post.AuthorID != userID {
		respondError(w, http.StatusForbidden, forbiddenMsg)
		return nil, false
	}
	return post, true
}

// requireCategory parses a validated category id and confirms the
// category exists. Responds and returns ok=false otherwise.
func (h *Posts) requireCategory(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return uuid.Nil, false
	}
	category, err := h.categories.FindByID(id)
	if err != nil {
		respondInternal(w, "load category failed", err)
		return uuid.Nil, false
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, falling back to
// def when absent or unparsable.
func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}
