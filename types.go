package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the options consumed by the token codec and the middleware
type Config interface {
	GetSecret() string
	GetValidity() int
	GetHeader() string
	GetExcludedEndpoints() []EndpointRule
	GetEndpoints() []EndpointRule
}

// UserStore is the authoritative user lookup collaborator. Implementations
// must return ErrUserNotFound (or a record-not-found error the resolver can
// normalize) when no record backs the id.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// TokenValidator validates tokens and extracts claims without tying callers
// to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (*TokenClaims, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(tokenString string) (*TokenClaims, error) {
	if f == nil {
		return nil, ErrTokenNotValid
	}
	return f(tokenString)
}

// UserResolver maps a verified token subject to the current user record.
type UserResolver interface {
	ExtractID(claims *TokenClaims) (uuid.UUID, error)
	Resolve(ctx context.Context, id uuid.UUID) (*User, error)
	CheckNotBanned(user *User) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
