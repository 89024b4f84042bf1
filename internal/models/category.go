package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is assigned when no color is supplied.
const DefaultCategoryColor = "#007bff"

// Category is a taxonomy node. Each post references exactly one
// category; deleting a category does not cascade to its posts, so
// readers must tolerate dangling references.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRef is the populated category shape embedded in post payloads.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Ref returns the populated reference shape for this category.
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
