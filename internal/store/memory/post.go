package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

type postStore struct{ b *Backend }

// populate fills the reference shapes on a copied post. Must be called
// with at least the read lock held.
func (s *postStore) populate(p *models.Post) {
	p.Author = s.b.userRef(p.AuthorID)
	p.Category = s.b.categoryRef(p.CategoryID)
	comments := make([]models.Comment, len(p.Comments))
	copy(comments, p.Comments)
	for i := range comments {
		comments[i].User = s.b.userRef(comments[i].UserID)
	}
	p.Comments = comments
	p.Tags = append([]string(nil), p.Tags...)
}

func (s *postStore) ListPublished(page, limit int) ([]models.Post, int, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var published []models.Post
	for _, p := range s.b.posts {
		if p.IsPublished {
			published = append(published, p)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return s.b.seqFor[published[i].ID] > s.b.seqFor[published[j].ID]
	})

	total := len(published)
	start := (page - 1) * limit
	if start >= total {
		return []models.Post{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]models.Post, end-start)
	copy(out, published[start:end])
	for i := range out {
		s.populate(&out[i])
	}
	return out, total, nil
}

func (s *postStore) FindByID(id uuid.UUID) (*models.Post, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	p, ok := s.b.posts[id]
	if !ok {
		return nil, nil
	}
	out := p
	s.populate(&out)
	return &out, nil
}

func (s *postStore) Create(p *models.Post) (*models.Post, error) {
	s.b.mu.Lock()
	now := time.Now()
	created := *p
	created.ID = uuid.New()
	created.ViewCount = 0
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Comments = nil
	if created.Tags == nil {
		created.Tags = []string{}
	}
	s.b.posts[created.ID] = created
	s.b.nextSeq(created.ID)
	s.b.mu.Unlock()

	return s.FindByID(created.ID)
}

func (s *postStore) Update(p *models.Post) (*models.Post, error) {
	s.b.mu.Lock()
	cur, ok := s.b.posts[p.ID]
	if !ok {
		s.b.mu.Unlock()
		return nil, store.ErrNotFound
	}
	cur.Title = p.Title
	cur.Content = p.Content
	cur.Excerpt = p.Excerpt
	cur.CategoryID = p.CategoryID
	cur.Tags = append([]string(nil), p.Tags...)
	if cur.Tags == nil {
		cur.Tags = []string{}
	}
	if p.FeaturedImage != "" {
		cur.FeaturedImage = p.FeaturedImage
	}
	cur.UpdatedAt = time.Now()
	s.b.posts[p.ID] = cur
	s.b.mu.Unlock()

	return s.FindByID(p.ID)
}

func (s *postStore) Delete(id uuid.UUID) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.b.posts, id)
	return nil
}

func (s *postStore) AddComment(postID, userID uuid.UUID, content string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	p, ok := s.b.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	p.Comments = append(p.Comments, models.Comment{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	})
	s.b.posts[postID] = p
	return nil
}

func (s *postStore) IncrementViews(id uuid.UUID) (int, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	p, ok := s.b.posts[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	p.ViewCount++
	s.b.posts[id] = p
	return p.ViewCount, nil
}
