package service

import (
	"context"
	"strings"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/query"
)

type UserService struct {
	userRepository port.UserPort
}

func NewUserService(userRepository port.UserPort) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) Invite(ctx context.Context, request *dto.InviteUserRequest) (*domain.User, error) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	if err := dto.Validate(request); err != nil {
		return nil, err
	}

	role := domain.UserRole(request.Role)
	if role == "" {
		role = domain.UserRoleUser
	}

	user := domain.NewInvitedUser(request.Email, role)
	if err := s.userRepository.Create(ctx, user); err != nil {
		logger.Error(ctx, "user: invite failed", err, map[string]any{"email": request.Email})
		return nil, err
	}

	logger.Info(ctx, "User invited", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

func (s *UserService) List(ctx context.Context, search string) ([]*domain.User, error) {
	users, err := s.userRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.SearchUsers(users, search), nil
}
