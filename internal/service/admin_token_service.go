package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/events"
	"github.com/spec-kit/news-gateway/internal/repository"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

const markUsedTimeout = 5 * time.Second

// AdminTokenService administers the bearer-secret lifecycle: creation with a
// fixed expiry window, listing, revocation, and store-backed validation.
type AdminTokenService struct {
	tokens     repository.AdminTokenRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time
}

// NewAdminTokenService builds the service.
func NewAdminTokenService(tokens repository.AdminTokenRepository, dispatcher events.Dispatcher, logger *zap.Logger, ttl time.Duration) *AdminTokenService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &AdminTokenService{
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Create issues a new bearer secret owned by the given administrator. The
// secret value hashes the trimmed description, creator id, current timestamp
// and 32 random bytes; the random component alone guarantees uniqueness.
func (s *AdminTokenService) Create(ctx context.Context, description string, creatorID int64) (*domain.AdminToken, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	entropy := make([]byte, 32)
	if _, err := rand.Read(entropy); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	now := s.now()
	seed := fmt.Sprintf("%s-%d-%d-%s", description, creatorID, now.UnixNano(), hex.EncodeToString(entropy))
	digest := sha256.Sum256([]byte(seed))

	token := &domain.AdminToken{
		ID:          uuid.NewString(),
		Token:       hex.EncodeToString(digest[:]),
		Description: description,
		CreatedBy:   creatorID,
		Active:      true,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		if errors.Is(err, repository.ErrDuplicateToken) {
			// A sha256 collision means the entropy source is broken.
			return nil, apperrors.NewInternalError(err)
		}
		return nil, apperrors.MapError(err)
	}

	created, err := s.tokens.GetByID(ctx, token.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTokenCreated, creatorID, events.TokenCreatedPayload{
		TokenID:     created.ID,
		Description: created.Description,
		ExpiresAt:   created.ExpiresAt,
	})
	return created, nil
}

// List returns every bearer secret, newest first, with creator metadata.
func (s *AdminTokenService) List(ctx context.Context) ([]domain.AdminToken, error) {
	tokens, err := s.tokens.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tokens, nil
}

// Revoke deactivates a bearer secret, keeping the record for audit. Revoking
// an already-revoked or expired secret succeeds silently.
func (s *AdminTokenService) Revoke(ctx context.Context, id string, actorID int64) error {
	if err := s.tokens.Revoke(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("admin token", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTokenRevoked, actorID, events.TokenRevokedPayload{TokenID: id})
	return nil
}

// Validate looks up an active secret by exact value. It returns (nil, nil)
// when no active row matches or when the fixed expiry has passed; expiry is
// evaluated here, at lookup time, never as a stored flag.
func (s *AdminTokenService) Validate(ctx context.Context, secretValue string) (*domain.AdminToken, error) {
	if secretValue == "" {
		return nil, nil
	}
	token, err := s.tokens.FindActiveByToken(ctx, secretValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	if token.Expired(s.now()) {
		return nil, nil
	}
	return token, nil
}

// MarkUsedAsync records the last-use timestamp as a fire-and-forget update.
// A lost race or a persistence failure never fails the overall request.
func (s *AdminTokenService) MarkUsedAsync(id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), markUsedTimeout)
		defer cancel()
		if err := s.tokens.MarkUsed(ctx, id); err != nil {
			s.logger.Warn("mark token used", zap.String("token_id", id), zap.Error(err))
		}
	}()
}

func (s *AdminTokenService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
