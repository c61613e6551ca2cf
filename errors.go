package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Machine readable codes carried on every failure response. Clients key off
// these values, they are wire contract and must not change.
const (
	TextCodeTokenExpired     = "jwt-expired"
	TextCodeTokenNotValid    = "jwt-not-valid"
	TextCodeTokenDenied      = "jwt-access-denied"
	TextCodeUserBlocked      = "user-blocked"
	TextCodeUserNotFound     = "user-not-found"
	TextCodeNotAuthenticated = "not-authenticated"
	TextCodeAccessDenied     = "access-denied"
	TextCodeOwnership        = "ownership"
)

// ErrTokenExpired is returned when the token expiration instant has passed.
var ErrTokenExpired = errors.New("authentication token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenNotValid is returned for missing, malformed, or unverifiable tokens.
var ErrTokenNotValid = errors.New("authentication token not valid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenNotValid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenAccessDenied is returned when a verified token lacks a required authority.
var ErrTokenAccessDenied = errors.New("token does not grant access to this resource", errors.CategoryAuthz).
	WithTextCode(TextCodeTokenDenied).
	WithCode(errors.CodeForbidden)

// ErrUserBlocked is returned when the resolved account has an active ban.
var ErrUserBlocked = errors.New("user account is blocked", errors.CategoryAuth).
	WithTextCode(TextCodeUserBlocked).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned when the token subject has no backing record.
// The requested id travels in the error metadata.
var ErrUserNotFound = errors.New("user not found", errors.CategoryAuth).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthenticated is returned when a guard runs with no resolved identity.
var ErrNotAuthenticated = errors.New("no authenticated user in request context", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrAccessDenied is returned when an authenticated user fails an endpoint rule.
var ErrAccessDenied = errors.New("access denied", errors.CategoryAuthz).
	WithTextCode(TextCodeAccessDenied).
	WithCode(errors.CodeForbidden)

// ErrOwnership is returned when a self-or-admin ownership check fails.
var ErrOwnership = errors.New("resource is owned by another user", errors.CategoryAuthz).
	WithTextCode(TextCodeOwnership).
	WithCode(errors.CodeForbidden)

// IsTokenExpiredError will check raw jwt library errors for expiration
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if HasTextCode(err, TextCodeTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check raw jwt library errors for malformed input
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if HasTextCode(err, TextCodeTokenNotValid) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// HasTextCode reports whether err carries the given machine readable code.
func HasTextCode(err error, textCode string) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
