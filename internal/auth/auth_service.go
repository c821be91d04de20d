package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "github.com/Ashmit12092000/ems/internal/auth/errors"
	"github.com/Ashmit12092000/ems/internal/auth/token"
	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, caller *domain.Actor, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, username, password string) (TokenPair, AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
}

type service struct {
	store  store.Store
	tokens *token.Manager
	cost   int
	logger *zap.Logger
}

func NewService(st store.Store, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{store: st, tokens: tokens, cost: bcrypt.DefaultCost, logger: l}
}

// Register creates an account. The first HOD may register itself; after
// that only a signed-in HOD (caller) can create HOD accounts.
func (s *service) Register(ctx context.Context, caller *domain.Actor, req RegisterRequest) (AuthResponse, error) {
	if !domain.ValidRole(req.Role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	if req.Role == domain.RoleHOD && (caller == nil || !caller.IsHOD()) {
		hods, err := s.store.ListUsers(ctx, domain.RoleHOD)
		if err != nil {
			s.logger.Error("register list hods failed", zap.Error(err))
			return AuthResponse{}, err
		}
		if len(hods) > 0 {
			return AuthResponse{}, autherrors.ErrHODRegistrationForbidden
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return AuthResponse{}, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return AuthResponse{}, autherrors.ErrUsernameTaken
		}
		s.logger.Error("register persist failed", zap.String("username", user.Username), zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return mapToResponse(*user), nil
}

func (s *service) Login(ctx context.Context, username, password string) (TokenPair, AuthResponse, error) {
	user, err := s.store.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return TokenPair{}, AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	pair, err := s.issue(*user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, mapToResponse(*user), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	actor, err := claims.Actor()
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	// Re-read so a changed role is picked up.
	user, err := s.store.FindUserByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
		}
		return TokenPair{}, AuthResponse{}, err
	}

	pair, err := s.issue(*user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, mapToResponse(*user), nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (AuthResponse, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return mapToResponse(*user), nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		s.logger.Error("change password persist failed", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *service) issue(u domain.User) (TokenPair, error) {
	access, refresh, err := s.tokens.Pair(u)
	if err != nil {
		s.logger.Error("token generation failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
