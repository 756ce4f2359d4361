package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

var _ port.UserPort = (*UserRepository)(nil)

// Create fails with a conflict when the email is already registered, ignoring case.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return serviceerrors.NewConflictError(fmt.Sprintf("user %s already exists", user.Email))
		}
	}
	if user.ID == "" {
		user.ID = domain.NewID()
	}

	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *UserRepository) GetAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		c := *u
		list[i] = &c
	}
	return list, nil
}

type SettingsRepository struct {
	mu       sync.RWMutex
	settings domain.Settings
}

func NewSettingsRepository(initial domain.Settings) *SettingsRepository {
	return &SettingsRepository{settings: initial}
}

var _ port.SettingsPort = (*SettingsRepository)(nil)

func (r *SettingsRepository) Get(_ context.Context) (domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *SettingsRepository) Save(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}
