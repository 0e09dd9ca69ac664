package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/news-gateway/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, expiresAt, err := tm.Issue(42, "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token string")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("different", time.Hour)

	token, _, err := tm.Issue(1, "bob", domain.RoleVisitor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); err != ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := tm.Verify(token); err != ErrInvalidCredential {
			t.Fatalf("token %q: expected ErrInvalidCredential, got %v", token, err)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Nanosecond)

	token, _, err := tm.Issue(1, "bob", domain.RoleEditor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := tm.Verify(token); err != ErrInvalidCredential {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestVerifyRejectsUnknownRoleClaim(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   1,
		Username: "mallory",
		Role:     domain.Role("SUPERUSER"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(signed); err != ErrInvalidCredential {
		t.Fatalf("expected unknown role rejection, got %v", err)
	}
}

func TestVerifyRejectsWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: 1,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(signed); err != ErrInvalidCredential {
		t.Fatalf("expected signing method rejection, got %v", err)
	}
}
