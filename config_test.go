package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/magiavventure/go-jwt"
)

func TestOptions_Validate(t *testing.T) {
	t.Run("applies defaults for header and validity", func(t *testing.T) {
		opts := &auth.Options{Secret: "s3cret"}

		assert.NoError(t, opts.Validate())
		assert.Equal(t, auth.DefaultHeader, opts.GetHeader())
		assert.Equal(t, auth.DefaultValidity, opts.GetValidity())
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		opts := &auth.Options{
			Secret:   "s3cret",
			Validity: 15,
			Header:   "x-custom-token",
			ExcludedEndpoints: auth.RuleSet{
				{Method: "GET", Path: "/health"},
			},
		}

		assert.NoError(t, opts.Validate())
		assert.Equal(t, "x-custom-token", opts.GetHeader())
		assert.Equal(t, 15, opts.GetValidity())
		assert.Len(t, opts.GetExcludedEndpoints(), 1)
	})

	t.Run("requires a secret", func(t *testing.T) {
		opts := &auth.Options{}
		assert.Error(t, opts.Validate())
	})
}

func TestMapError(t *testing.T) {
	t.Run("maps rich errors to their code and status", func(t *testing.T) {
		tests := []struct {
			err    error
			code   string
			status int
		}{
			{auth.ErrTokenExpired, "jwt-expired", 401},
			{auth.ErrTokenNotValid, "jwt-not-valid", 401},
			{auth.ErrTokenAccessDenied, "jwt-access-denied", 403},
			{auth.ErrUserBlocked, "user-blocked", 401},
			{auth.ErrUserNotFound, "user-not-found", 401},
			{auth.ErrNotAuthenticated, "not-authenticated", 401},
			{auth.ErrAccessDenied, "access-denied", 403},
			{auth.ErrOwnership, "ownership", 403},
		}

		for _, tt := range tests {
			httpErr := auth.MapError(tt.err)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.NotEmpty(t, httpErr.Message)
			assert.NotEmpty(t, httpErr.Description)
		}
	})

	t.Run("unknown errors become access-denied auth failures", func(t *testing.T) {
		httpErr := auth.MapError(assert.AnError)
		assert.Equal(t, auth.TextCodeAccessDenied, httpErr.Code)
		assert.Equal(t, 401, httpErr.Status)
	})
}
