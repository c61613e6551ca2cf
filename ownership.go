package auth

import (
	"context"

	"github.com/google/uuid"
)

type ownerKind int

const (
	ownerUnspecified ownerKind = iota
	ownerByID
	ownerByName
)

// Owner identifies a resource owner either by id or by name. The zero value
// matches nothing and always fails the ownership check.
type Owner struct {
	kind ownerKind
	id   uuid.UUID
	name string
}

// OwnerID builds an Owner matched against the authenticated user's id.
func OwnerID(id uuid.UUID) Owner {
	return Owner{kind: ownerByID, id: id}
}

// OwnerName builds an Owner matched against the authenticated user's name.
func OwnerName(name string) Owner {
	return Owner{kind: ownerByName, name: name}
}

// OwnershipGuard is the self-or-admin policy: a request may touch a resource
// only when the authenticated user is the resource owner or carries the
// admin authority. It is called from business logic, not wired into routing.
type OwnershipGuard struct {
	logger Logger
}

// NewOwnershipGuard creates an OwnershipGuard.
func NewOwnershipGuard() *OwnershipGuard {
	return &OwnershipGuard{logger: defLogger{}}
}

func (g *OwnershipGuard) WithLogger(logger Logger) *OwnershipGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// ValidateOwnership fails with ErrNotAuthenticated when the context carries
// no resolved user, succeeds unconditionally for admins, and otherwise
// requires the owner value to match the user's own id or name exactly.
func (g *OwnershipGuard) ValidateOwnership(ctx context.Context, owner Owner) error {
	user, ok := CurrentUser(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	if user.IsAdmin() {
		return nil
	}

	switch owner.kind {
	case ownerByID:
		if owner.id == user.ID {
			return nil
		}
	case ownerByName:
		if owner.name == user.Name {
			return nil
		}
	}

	g.logger.Debug("ownership check rejected for user %s", user.ID)

	return ownershipError(user)
}

func ownershipError(user *User) error {
	clone := ErrOwnership.Clone()
	return clone.WithMetadata(map[string]any{
		"user": user.ID.String(),
	})
}
