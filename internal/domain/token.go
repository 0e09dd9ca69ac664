package domain

import "time"

// AdminToken is a long-lived opaque bearer secret issued by an administrator
// for machine-to-machine access to the RPC surface. Unlike session
// credentials it is validated against the store, carries a fixed expiry that
// is never extended by use, and can be revoked while the record is retained.
type AdminToken struct {
	ID              string
	Token           string
	Description     string
	CreatedBy       int64
	CreatorUsername string
	Active          bool
	ExpiresAt       time.Time
	LastUsedAt      *time.Time
	CreatedAt       time.Time
}

// Expired reports whether the token's fixed expiry has passed at the given
// instant. Expiry is an evaluation-time predicate, never a stored flag.
func (t *AdminToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ValidAt reports whether the token is usable at the given instant.
func (t *AdminToken) ValidAt(now time.Time) bool {
	return t.Active && !t.Expired(now)
}
