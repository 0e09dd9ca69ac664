package domain

import (
	"testing"
	"time"
)

func TestAdminTokenValidAt(t *testing.T) {
	expiry := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := &AdminToken{Active: true, ExpiresAt: expiry}

	if !token.ValidAt(expiry.Add(-time.Second)) {
		t.Fatalf("expected valid one second before expiry")
	}
	if token.ValidAt(expiry) {
		t.Fatalf("expected invalid at the expiry instant")
	}
	if token.ValidAt(expiry.Add(time.Second)) {
		t.Fatalf("expected invalid one second after expiry")
	}

	token.Active = false
	if token.ValidAt(expiry.Add(-time.Hour)) {
		t.Fatalf("revoked token must never be valid")
	}
}

func TestParseRole(t *testing.T) {
	for _, value := range []string{"VISITOR", "EDITOR", "ADMIN"} {
		role, err := ParseRole(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if string(role) != value {
			t.Fatalf("parse %q: got %q", value, role)
		}
	}

	for _, value := range []string{"", "admin", "SUPERUSER", "visitor "} {
		if _, err := ParseRole(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}
