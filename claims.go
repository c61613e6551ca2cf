package auth

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the decoded payload of a verified token: the registered
// claim set plus a flattened snapshot of the user record at signing time.
type TokenClaims struct {
	jwt.RegisteredClaims
	Name                string      `json:"name,omitempty"`
	Authorities         []Authority `json:"authorities,omitempty"`
	BanExpiration       *time.Time  `json:"banExpiration,omitempty"`
	PreferredCategories []Category  `json:"preferredCategories,omitempty"`
}

// Subject returns the subject claim, the user id as a string
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID parses the subject claim into a uuid
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// HasAuthority checks the snapshot authorities for an exact match. Note the
// snapshot reflects the user at signing time, authorization decisions that
// must see revocations should go through the resolved record instead.
func (c *TokenClaims) HasAuthority(authority Authority) bool {
	return slices.Contains(c.Authorities, authority)
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// SnapshotUser rebuilds the embedded user snapshot. The returned record is
// as stale as the token itself; the resolver is the source of truth.
func (c *TokenClaims) SnapshotUser() (*User, error) {
	id, err := c.UserID()
	if err != nil {
		return nil, ErrTokenNotValid
	}

	return &User{
		ID:                  id,
		Name:                c.Name,
		Authorities:         c.Authorities,
		BanExpiration:       c.BanExpiration,
		PreferredCategories: c.PreferredCategories,
	}, nil
}
