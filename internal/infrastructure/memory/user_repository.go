package memory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	store *Store
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// FindByUsername obtiene un usuario por username.
func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// Upsert crea o actualiza el usuario por username.
func (r *UserRepo) Upsert(_ context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.Username]; ok {
		existing.PasswordHash, existing.Role = user.PasswordHash, user.Role
		user.ID, user.CreatedAt = existing.ID, existing.CreatedAt
		return nil
	}
	s.nextUser++
	user.ID = s.nextUser
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	s.users[cp.Username] = &cp
	return nil
}
