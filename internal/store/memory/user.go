package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

type userStore struct{ b *Backend }

func (s *userStore) FindByEmail(email string) (*models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	for _, u := range s.b.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *userStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	u, ok := s.b.users[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (s *userStore) Create(name, email, passwordHash string) (*models.User, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for _, u := range s.b.users {
		if strings.EqualFold(u.Email, email) {
			return nil, store.ErrDuplicateEmail
		}
	}
	now := time.Now()
	u := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Avatar:       models.DefaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.b.users[u.ID] = u
	s.b.nextSeq(u.ID)
	out := u
	return &out, nil
}

func (s *userStore) Update(u *models.User) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	cur, ok := s.b.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Name = u.Name
	cur.Bio = u.Bio
	cur.Avatar = u.Avatar
	cur.UpdatedAt = time.Now()
	s.b.users[u.ID] = cur
	u.UpdatedAt = cur.UpdatedAt
	return nil
}
