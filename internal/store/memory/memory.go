// Package memory implements the store interfaces entirely in process
// memory. It backs the server when no database is configured and doubles
// as the store used by handler tests. Data does not survive a restart.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Backend holds all records behind a single lock. Operations copy
// records on the way in and out so callers never alias internal state.
type Backend struct {
	mu sync.RWMutex

	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	posts      map[uuid.UUID]models.Post

	// seq orders records with identical timestamps so "newest first"
	// stays deterministic.
	seq    int64
	seqFor map[uuid.UUID]int64
}

// New creates an empty in-memory backend and returns its stores.
func New() *store.Stores {
	b := &Backend{
		users:      make(map[uuid.UUID]models.User),
		categories: make(map[uuid.UUID]models.Category),
		posts:      make(map[uuid.UUID]models.Post),
		seqFor:     make(map[uuid.UUID]int64),
	}
	return &store.Stores{
		Users:      &userStore{b},
		Categories: &categoryStore{b},
		Posts:      &postStore{b},
	}
}

// nextSeq must be called with the write lock held.
func (b *Backend) nextSeq(id uuid.UUID) {
	b.seq++
	b.seqFor[id] = b.seq
}

// userRef builds the populated author shape for an id, with the read
// lock held. Returns nil if the user is gone.
func (b *Backend) userRef(id uuid.UUID) *models.UserRef {
	u, ok := b.users[id]
	if !ok {
		return nil
	}
	return u.Ref()
}

// categoryRef builds the populated category shape for an id, with the
// read lock held. Returns nil for dangling references.
func (b *Backend) categoryRef(id uuid.UUID) *models.CategoryRef {
	c, ok := b.categories[id]
	if !ok {
		return nil
	}
	return c.Ref()
}
