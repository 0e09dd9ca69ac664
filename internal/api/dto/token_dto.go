package dto

import (
	"encoding/xml"
	"time"

	"github.com/spec-kit/news-gateway/internal/domain"
)

// CreateTokenRequest is the body of POST /api/admin/soap-tokens.
type CreateTokenRequest struct {
	Description string `json:"description"`
}

// VerifyTokenRequest is the body of POST /api/admin/soap-tokens/verify.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// CreatorRef identifies the administrator who issued a token.
type CreatorRef struct {
	ID       int64  `xml:"id" json:"id"`
	Username string `xml:"username" json:"username"`
}

// AdminTokenResponse is the wire shape of a bearer secret on the
// administrative surface.
type AdminTokenResponse struct {
	ID          string     `xml:"id" json:"id"`
	Token       string     `xml:"token" json:"token"`
	Description string     `xml:"description" json:"description"`
	Creator     CreatorRef `xml:"creator" json:"creator"`
	Active      bool       `xml:"isActive" json:"isActive"`
	ExpiresAt   time.Time  `xml:"expiresAt" json:"expiresAt"`
	LastUsedAt  *time.Time `xml:"lastUsedAt,omitempty" json:"lastUsedAt"`
	CreatedAt   time.Time  `xml:"createdAt" json:"createdAt"`
}

// TokenListResponse is the payload of the token listing.
type TokenListResponse struct {
	XMLName xml.Name             `xml:"response" json:"-"`
	Success bool                 `xml:"success" json:"success"`
	Data    []AdminTokenResponse `xml:"data>token" json:"data"`
}

// TokenCreatedResponse is the payload of token creation.
type TokenCreatedResponse struct {
	XMLName xml.Name           `xml:"response" json:"-"`
	Success bool               `xml:"success" json:"success"`
	Message string             `xml:"message" json:"message"`
	Data    AdminTokenResponse `xml:"data" json:"data"`
}

// TokenRevokedResponse is the payload of token revocation.
type TokenRevokedResponse struct {
	XMLName xml.Name `xml:"response" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Message string   `xml:"message" json:"message"`
}

// TokenVerifiedData is the subset returned to self-checking machine clients.
type TokenVerifiedData struct {
	ID          string     `xml:"id" json:"id"`
	Description string     `xml:"description" json:"description"`
	ExpiresAt   time.Time  `xml:"expiresAt" json:"expiresAt"`
	LastUsedAt  *time.Time `xml:"lastUsedAt,omitempty" json:"lastUsedAt"`
}

// TokenVerifiedResponse is the payload of a successful verification.
type TokenVerifiedResponse struct {
	XMLName xml.Name          `xml:"response" json:"-"`
	Success bool              `xml:"success" json:"success"`
	Message string            `xml:"message" json:"message"`
	Data    TokenVerifiedData `xml:"data" json:"data"`
}

// NewAdminTokenResponse converts the domain model.
func NewAdminTokenResponse(token *domain.AdminToken) AdminTokenResponse {
	return AdminTokenResponse{
		ID:          token.ID,
		Token:       token.Token,
		Description: token.Description,
		Creator: CreatorRef{
			ID:       token.CreatedBy,
			Username: token.CreatorUsername,
		},
		Active:     token.Active,
		ExpiresAt:  token.ExpiresAt,
		LastUsedAt: token.LastUsedAt,
		CreatedAt:  token.CreatedAt,
	}
}
