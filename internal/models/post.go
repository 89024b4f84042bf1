package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFeaturedImage is the sentinel used when a post has no image.
const DefaultFeaturedImage = "default-post.jpg"

// Post is a blog post with its comments embedded. Author and Category
// are populated reference shapes filled in by store reads; the raw ids
// are kept for ownership checks but not serialized. A nil Category
// means the referenced category has since been deleted.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	CategoryID    uuid.UUID `json:"-"`
	AuthorID      uuid.UUID `json:"-"`
	Tags          []string  `json:"tags"`
	FeaturedImage string    `json:"featuredImage"`
	ViewCount     int       `json:"viewCount"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Populated by store reads.
	Author   *UserRef     `json:"author"`
	Category *CategoryRef `json:"category"`
	Comments []Comment    `json:"comments"`
}

// DisplayExcerpt returns the excerpt, falling back to a content prefix
// when none was supplied.
func (p *Post) DisplayExcerpt() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	const max = 150
	runes := []rune(p.Content)
	if len(runes) <= max {
		return p.Content
	}
	return string(runes[:max]) + "..."
}

// Comment is an embedded sub-record of a Post: appended through the
// post it belongs to, never edited or deleted independently.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	// Populated by store reads.
	User *UserRef `json:"user"`
}
