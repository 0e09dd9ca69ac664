package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/auth"
	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/events"
	"github.com/spec-kit/news-gateway/internal/repository"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// UserDirectoryService provides the account domain actions multiplexed by
// the RPC dispatcher: authentication plus administrative user management.
type UserDirectoryService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserDirectoryService builds the service.
func NewUserDirectoryService(users repository.UserRepository, tokenMgr *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *UserDirectoryService {
	return &UserDirectoryService{
		users:      users,
		tokenMgr:   tokenMgr,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Authenticate verifies the username/password pair and issues a session
// credential. The same failure is reported for an unknown username and a
// wrong password.
func (s *UserDirectoryService) Authenticate(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, "", apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid username or password")
	}

	token, _, err := s.tokenMgr.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserAuthenticated, user.ID, events.UserAuthenticatedPayload{
		Username: user.Username,
		Role:     user.Role,
	})
	return user, token, nil
}

// ListUsers returns every account.
func (s *UserDirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// AddUser creates an account. The existence check races against concurrent
// creations; the store's uniqueness constraint is the correctness backstop
// and the loser surfaces as a conflict.
func (s *UserDirectoryService) AddUser(ctx context.Context, actorID int64, username, password string, role domain.Role) (int64, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return 0, apperrors.NewConflict("username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.NewConflict("username already exists", nil)
		}
		return 0, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserCreated, actorID, events.UserCreatedPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	return user.ID, nil
}

// DeleteUser removes an account.
func (s *UserDirectoryService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return apperrors.MapError(err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserDeleted, actorID, events.UserDeletedPayload{
		UserID:   user.ID,
		Username: user.Username,
	})
	return nil
}

func (s *UserDirectoryService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
