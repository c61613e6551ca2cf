package auth

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Authority is a role string granting access to specific operations
type Authority = string

const (
	// AuthorityUser is the baseline authority every account carries
	AuthorityUser Authority = "user"
	// AuthorityAdmin grants unconditional access, including ownership overrides
	AuthorityAdmin Authority = "admin"
)

// Category is a preference association carried on the user record. The
// authentication core treats it as opaque payload.
type Category struct {
	ID         uuid.UUID `json:"id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Background string    `json:"background,omitempty"`
}

// User is the authoritative user record. Once resolved for a request it is
// treated as immutable.
type User struct {
	bun.BaseModel       `bun:"table:users,alias:usr" json:"-"`
	ID                  uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name                string      `bun:"name,notnull,unique" json:"name,omitempty"`
	Authorities         []Authority `bun:"authorities,type:jsonb" json:"authorities,omitempty"`
	BanExpiration       *time.Time  `bun:"ban_expiration,nullzero" json:"banExpiration,omitempty"`
	PreferredCategories []Category  `bun:"preferred_categories,type:jsonb" json:"preferredCategories,omitempty"`
	CreatedAt           *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt           *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt           *time.Time  `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasAuthority checks for an exact, case sensitive authority match
func (u *User) HasAuthority(authority Authority) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.Authorities, authority)
}

// IsAdmin checks for the admin authority
func (u *User) IsAdmin() bool {
	return u.HasAuthority(AuthorityAdmin)
}

// IsBanned reports whether the account has a ban expiring in the future
// relative to now.
func (u *User) IsBanned(now time.Time) bool {
	if u == nil || u.BanExpiration == nil {
		return false
	}
	return u.BanExpiration.After(now)
}
