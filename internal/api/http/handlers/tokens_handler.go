package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-gateway/internal/api/dto"
	"github.com/spec-kit/news-gateway/internal/api/render"
	"github.com/spec-kit/news-gateway/internal/auth"
	"github.com/spec-kit/news-gateway/internal/service"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// TokensHandler exposes the administrative bearer-secret surface.
type TokensHandler struct {
	tokens *service.AdminTokenService
}

// NewTokensHandler constructs handler.
func NewTokensHandler(tokenService *service.AdminTokenService) *TokensHandler {
	return &TokensHandler{tokens: tokenService}
}

// List handles GET /api/admin/soap-tokens.
func (h *TokensHandler) List(c *fiber.Ctx) error {
	tokens, err := h.tokens.List(c.UserContext())
	if err != nil {
		return render.Error(c, err)
	}

	data := make([]dto.AdminTokenResponse, 0, len(tokens))
	for i := range tokens {
		data = append(data, dto.NewAdminTokenResponse(&tokens[i]))
	}
	return render.Negotiate(c, http.StatusOK, dto.TokenListResponse{Success: true, Data: data})
}

// Create handles POST /api/admin/soap-tokens.
func (h *TokensHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return render.Error(c, apperrors.NewUnauthorized("authentication required"))
	}

	var req dto.CreateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return render.Error(c, apperrors.NewValidationError("invalid payload", nil))
	}

	token, err := h.tokens.Create(c.UserContext(), req.Description, claims.UserID)
	if err != nil {
		return render.Error(c, err)
	}

	return render.Negotiate(c, http.StatusCreated, dto.TokenCreatedResponse{
		Success: true,
		Message: "token created",
		Data:    dto.NewAdminTokenResponse(token),
	})
}

// Revoke handles DELETE /api/admin/soap-tokens/:id.
func (h *TokensHandler) Revoke(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return render.Error(c, apperrors.NewUnauthorized("authentication required"))
	}

	if err := h.tokens.Revoke(c.UserContext(), c.Params("id"), claims.UserID); err != nil {
		return render.Error(c, err)
	}

	return render.Negotiate(c, http.StatusOK, dto.TokenRevokedResponse{
		Success: true,
		Message: "token revoked",
	})
}

// Verify handles POST /api/admin/soap-tokens/verify. Public: downstream
// machine clients self-check a secret before use.
func (h *TokensHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return render.Error(c, apperrors.NewValidationError("invalid payload", nil))
	}
	if req.Token == "" {
		return render.Error(c, apperrors.NewValidationError("token required", nil))
	}

	token, err := h.tokens.Validate(c.UserContext(), req.Token)
	if err != nil {
		return render.Error(c, err)
	}
	if token == nil {
		return render.Error(c, apperrors.NewUnauthorized("invalid or expired token"))
	}

	h.tokens.MarkUsedAsync(token.ID)

	return render.Negotiate(c, http.StatusOK, dto.TokenVerifiedResponse{
		Success: true,
		Message: "token valid",
		Data: dto.TokenVerifiedData{
			ID:          token.ID,
			Description: token.Description,
			ExpiresAt:   token.ExpiresAt,
			LastUsedAt:  token.LastUsedAt,
		},
	})
}
