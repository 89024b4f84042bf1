// Package store defines the persistence contracts for users, categories,
// and posts, together with the sentinel errors implementations report.
// Concrete backends live in the postgres and memory subpackages; the
// rest of the application only ever sees these interfaces, and the
// backend is chosen once at startup.
package store

import (
	"errors"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

var (
	// ErrNotFound is returned for writes against an id that does not exist.
	// Reads report absence as a nil record instead.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when creating a user with an email
	// already on file.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicateCategoryName is returned when creating a category whose
	// name is already taken.
	ErrDuplicateCategoryName = errors.New("duplicate category name")
)

// UserStore persists account records. Passwords cross this boundary
// only as bcrypt hashes.
type UserStore interface {
	// FindByEmail returns the user with the given email, or nil.
	FindByEmail(email string) (*models.User, error)
	// FindByID returns the user with the given id, or nil.
	FindByID(id uuid.UUID) (*models.User, error)
	// Create inserts a new user with defaults applied (role "user",
	// sentinel avatar). Fails with ErrDuplicateEmail.
	Create(name, email, passwordHash string) (*models.User, error)
	// Update persists profile mutations (name, bio, avatar).
	Update(u *models.User) error
}

// CategoryStore persists taxonomy nodes.
type CategoryStore interface {
	// List returns all categories, newest first.
	List() ([]models.Category, error)
	// FindByID returns the category with the given id, or nil.
	FindByID(id uuid.UUID) (*models.Category, error)
	// Create inserts a new category. Fails with ErrDuplicateCategoryName.
	Create(c *models.Category) (*models.Category, error)
	// Update persists changes to name, slug, description, and color.
	// Fails with ErrDuplicateCategoryName when renamed onto a taken name.
	Update(c *models.Category) error
	// Delete removes a category. Posts referencing it are left in place.
	Delete(id uuid.UUID) error
}

// PostStore persists posts and their embedded comments.
type PostStore interface {
	// ListPublished returns one page of published posts, newest first,
	// with author and category populated, plus the total published count.
	// page is 1-based.
	ListPublished(page, limit int) ([]models.Post, int, error)
	// FindByID returns a fully populated post (author, category, and
	// each comment's author), or nil. It has no side effects.
	FindByID(id uuid.UUID) (*models.Post, error)
	// Create inserts a new post and returns it populated.
	Create(p *models.Post) (*models.Post, error)
	// Update persists changes to title, content, excerpt, category,
	// tags, and featured image, and returns the post populated.
	Update(p *models.Post) (*models.Post, error)
	// Delete removes a post and its comments.
	Delete(id uuid.UUID) error
	// AddComment appends a comment with a server-assigned id and
	// timestamp to the given post.
	AddComment(postID, userID uuid.UUID, content string) error
	// IncrementViews atomically bumps the view count by one and returns
	// the new value. Concurrent increments must not lose updates.
	IncrementViews(id uuid.UUID) (int, error)
}

// Stores bundles the three stores a backend provides.
type Stores struct {
	Users      UserStore
	Categories CategoryStore
	Posts      PostStore
}
