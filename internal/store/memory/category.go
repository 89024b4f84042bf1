package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

type categoryStore struct{ b *Backend }

func (s *categoryStore) List() ([]models.Category, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]models.Category, 0, len(s.b.categories))
	for _, c := range s.b.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.b.seqFor[out[i].ID] > s.b.seqFor[out[j].ID]
	})
	return out, nil
}

func (s *categoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	c, ok := s.b.categories[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (s *categoryStore) Create(c *models.Category) (*models.Category, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for _, existing := range s.b.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return nil, store.ErrDuplicateCategoryName
		}
	}
	now := time.Now()
	created := *c
	created.ID = uuid.New()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.b.categories[created.ID] = created
	s.b.nextSeq(created.ID)
	out := created
	return &out, nil
}

func (s *categoryStore) Update(c *models.Category) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	cur, ok := s.b.categories[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.b.categories {
		if id != c.ID && strings.EqualFold(existing.Name, c.Name) {
			return store.ErrDuplicateCategoryName
		}
	}
	cur.Name = c.Name
	cur.Slug = c.Slug
	cur.Description = c.Description
	cur.Color = c.Color
	cur.UpdatedAt = time.Now()
	s.b.categories[c.ID] = cur
	return nil
}

func (s *categoryStore) Delete(id uuid.UUID) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.categories[id]; !ok {
		return store.ErrNotFound
	}
	// Posts referencing this category keep their dangling reference.
	delete(s.b.categories, id)
	return nil
}
