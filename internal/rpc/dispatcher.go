package rpc

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/auth"
	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/service"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// Response envelopes. Every operation returns its full declared shape with
// success=false and zero values for the remaining parts on any failure; a
// caller can always destructure the whole response regardless of outcome.
// This soft-failure contract exists because some RPC client tooling handles
// faults poorly, and it must hold for every failure mode.

// AuthenticateUserResponse is the authenticateUser envelope.
type AuthenticateUserResponse struct {
	XMLName xml.Name `xml:"tns:authenticateUserResponse" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Message string   `xml:"message" json:"message"`
	Role    string   `xml:"role" json:"role"`
	Token   string   `xml:"token" json:"token"`
}

// ListUsersResponse is the listUsers envelope. Users is a JSON-serialized
// array carried as a single string part, per the WSDL.
type ListUsersResponse struct {
	XMLName xml.Name `xml:"tns:listUsersResponse" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Message string   `xml:"message" json:"message"`
	Users   string   `xml:"users" json:"users"`
}

// AddUserResponse is the addUser envelope.
type AddUserResponse struct {
	XMLName xml.Name `xml:"tns:addUserResponse" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Message string   `xml:"message" json:"message"`
	UserID  int64    `xml:"userId" json:"userId"`
}

// DeleteUserResponse is the deleteUser envelope.
type DeleteUserResponse struct {
	XMLName xml.Name `xml:"tns:deleteUserResponse" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Message string   `xml:"message" json:"message"`
}

type userRecord struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Dispatcher routes named operations to domain actions, re-deriving the
// authorization policy per operation since the single endpoint multiplexes
// operations with different access levels.
type Dispatcher struct {
	directory *service.UserDirectoryService
	tokens    *auth.TokenManager
	logger    *zap.Logger
}

// NewDispatcher builds the dispatcher.
func NewDispatcher(directory *service.UserDirectoryService, tokens *auth.TokenManager, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{directory: directory, tokens: tokens, logger: logger}
}

// Dispatch invokes the named operation. ok is false when the operation is
// not part of the service contract.
func (d *Dispatcher) Dispatch(ctx context.Context, call *OperationCall) (payload any, ok bool) {
	switch call.Name() {
	case "authenticateUser":
		return d.AuthenticateUser(ctx, call.Part("username"), call.Part("password")), true
	case "listUsers":
		return d.ListUsers(ctx, call.Part("token")), true
	case "addUser":
		return d.AddUser(ctx, call.Part("token"), call.Part("username"), call.Part("password"), call.Part("role")), true
	case "deleteUser":
		return d.DeleteUser(ctx, call.Part("token"), call.Part("userId")), true
	default:
		return nil, false
	}
}

// AuthenticateUser verifies a username/password pair and issues a session
// credential. No prior authorization is required.
func (d *Dispatcher) AuthenticateUser(ctx context.Context, username, password string) AuthenticateUserResponse {
	if username == "" || password == "" {
		return AuthenticateUserResponse{Message: "username and password required"}
	}

	user, token, err := d.directory.Authenticate(ctx, username, password)
	if err != nil {
		return AuthenticateUserResponse{Message: d.failureMessage("authenticateUser", err)}
	}

	return AuthenticateUserResponse{
		Success: true,
		Message: "authentication successful",
		Role:    string(user.Role),
		Token:   token,
	}
}

// ListUsers returns every account as a JSON string part. ADMIN only.
func (d *Dispatcher) ListUsers(ctx context.Context, token string) ListUsersResponse {
	if msg, ok := d.authorize(token, domain.RoleAdmin); !ok {
		return ListUsersResponse{Message: msg}
	}

	users, err := d.directory.ListUsers(ctx)
	if err != nil {
		return ListUsersResponse{Message: d.failureMessage("listUsers", err)}
	}

	records := make([]userRecord, 0, len(users))
	for _, user := range users {
		records = append(records, userRecord{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	serialized, err := json.Marshal(records)
	if err != nil {
		return ListUsersResponse{Message: d.failureMessage("listUsers", apperrors.NewInternalError(err))}
	}

	return ListUsersResponse{
		Success: true,
		Message: fmt.Sprintf("%d user(s) found", len(records)),
		Users:   string(serialized),
	}
}

// AddUser creates an account with the given role, defaulting to VISITOR.
// ADMIN only.
func (d *Dispatcher) AddUser(ctx context.Context, token, username, password, roleStr string) AddUserResponse {
	claims, msg, ok := d.authorizeClaims(token, domain.RoleAdmin)
	if !ok {
		return AddUserResponse{Message: msg}
	}

	if username == "" || password == "" {
		return AddUserResponse{Message: "username and password required"}
	}

	role := domain.RoleVisitor
	if roleStr != "" {
		parsed, err := domain.ParseRole(roleStr)
		if err != nil {
			return AddUserResponse{Message: "invalid role"}
		}
		role = parsed
	}

	userID, err := d.directory.AddUser(ctx, claims.UserID, username, password, role)
	if err != nil {
		return AddUserResponse{Message: d.failureMessage("addUser", err)}
	}

	return AddUserResponse{
		Success: true,
		Message: "user created",
		UserID:  userID,
	}
}

// DeleteUser removes an account. ADMIN only.
func (d *Dispatcher) DeleteUser(ctx context.Context, token, userIDStr string) DeleteUserResponse {
	claims, msg, ok := d.authorizeClaims(token, domain.RoleAdmin)
	if !ok {
		return DeleteUserResponse{Message: msg}
	}

	if userIDStr == "" {
		return DeleteUserResponse{Message: "user id required"}
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return DeleteUserResponse{Message: "invalid user id"}
	}

	if err := d.directory.DeleteUser(ctx, claims.UserID, userID); err != nil {
		return DeleteUserResponse{Message: d.failureMessage("deleteUser", err)}
	}

	return DeleteUserResponse{
		Success: true,
		Message: "user deleted",
	}
}

// authorize applies the fixed check order for every gated operation:
// token present, token verifies, role matches. An empty token never reaches
// the verifier.
func (d *Dispatcher) authorize(token string, required domain.Role) (string, bool) {
	_, msg, ok := d.authorizeClaims(token, required)
	return msg, ok
}

func (d *Dispatcher) authorizeClaims(token string, required domain.Role) (*auth.Claims, string, bool) {
	if token == "" {
		return nil, "token required", false
	}
	claims, err := d.tokens.Verify(token)
	if err != nil {
		return nil, "invalid or expired token", false
	}
	switch claims.Role {
	case domain.RoleVisitor, domain.RoleEditor, domain.RoleAdmin:
		if claims.Role != required {
			return nil, fmt.Sprintf("access denied: %s role required", required), false
		}
	default:
		return nil, fmt.Sprintf("access denied: %s role required", required), false
	}
	return claims, "", true
}

// failureMessage rewrites a typed failure into a readable envelope message.
// Internal failures are logged and reported generically; nothing else about
// them reaches the wire.
func (d *Dispatcher) failureMessage(operation string, err error) string {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus >= 500 {
		d.logger.Error("rpc operation failed", zap.String("operation", operation), zap.Error(domainErr))
		return "internal server error"
	}
	return domainErr.Message
}
