package user

import (
	"context"
	"errors"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"
	usererrors "github.com/Ashmit12092000/ems/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	// ListEmployees returns every Employee except excludeID, for picking a
	// swap partner.
	ListEmployees(ctx context.Context, excludeID uuid.UUID) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	// List returns users with the given role, or all users when role is empty.
	List(ctx context.Context, role string) ([]UserResponse, error)
}

type service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(st store.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{store: st, logger: l}
}

func (s *service) ListEmployees(ctx context.Context, excludeID uuid.UUID) ([]UserResponse, error) {
	users, err := s.store.ListUsers(ctx, domain.RoleEmployee)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.ID != excludeID {
			out = append(out, u)
		}
	}
	return mapToListResponse(out), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("get user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) List(ctx context.Context, role string) ([]UserResponse, error) {
	if role != "" && !domain.ValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}

	users, err := s.store.ListUsers(ctx, role)
	if err != nil {
		s.logger.Error("list users failed", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(users), nil
}
