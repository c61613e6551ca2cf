package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	auth "github.com/magiavventure/go-jwt"
)

func testConfig(secret string) *auth.Options {
	return &auth.Options{
		Secret:   secret,
		Validity: 30,
		Header:   "mg-a-token",
	}
}

func testUser() *auth.User {
	return &auth.User{
		ID:          uuid.New(),
		Name:        "gandalf",
		Authorities: []auth.Authority{auth.AuthorityUser},
	}
}

func TestNewTokenService(t *testing.T) {
	t.Run("creates token service from config", func(t *testing.T) {
		service, err := auth.NewTokenService(testConfig("test-secret"), nil)

		assert.NoError(t, err)
		assert.NotNil(t, service)
		assert.Equal(t, "mg-a-token", service.Header())
	})

	t.Run("rejects empty secret at construction", func(t *testing.T) {
		service, err := auth.NewTokenService(testConfig(""), nil)

		assert.Error(t, err)
		assert.Nil(t, service)
	})

	t.Run("rejects nil config", func(t *testing.T) {
		service, err := auth.NewTokenService(nil, nil)

		assert.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestTokenService_Generate(t *testing.T) {
	service, err := auth.NewTokenService(testConfig("test-secret"), nil)
	assert.NoError(t, err)

	t.Run("round trip yields subject equal to user id", func(t *testing.T) {
		user := testUser()

		tokenString, err := service.Generate(user)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		claims, err := service.Validate(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject())
		assert.Equal(t, user.ID.String(), claims.RegisteredClaims.Issuer)
		assert.Equal(t, user.Name, claims.Name)
		assert.True(t, claims.HasAuthority(auth.AuthorityUser))
	})

	t.Run("embeds the user snapshot in the claims payload", func(t *testing.T) {
		ban := time.Now().Add(2 * time.Hour).Truncate(time.Second)
		user := testUser()
		user.BanExpiration = &ban
		user.PreferredCategories = []auth.Category{{ID: uuid.New(), Name: "fantasy"}}

		tokenString, err := service.Generate(user)
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)
		assert.NoError(t, err)

		snapshot, err := claims.SnapshotUser()
		assert.NoError(t, err)
		assert.Equal(t, user.ID, snapshot.ID)
		assert.Equal(t, user.Name, snapshot.Name)
		assert.NotNil(t, snapshot.BanExpiration)
		assert.Len(t, snapshot.PreferredCategories, 1)
		assert.Equal(t, "fantasy", snapshot.PreferredCategories[0].Name)
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := service.Generate(nil)
		assert.Error(t, err)
	})
}

func TestTokenService_Validate(t *testing.T) {
	service, err := auth.NewTokenService(testConfig("test-secret"), nil)
	assert.NoError(t, err)

	t.Run("expired token fails with jwt-expired", func(t *testing.T) {
		tokenString, err := service.GenerateWithValidity(testUser(), -3)
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenExpired))
		assert.True(t, auth.IsTokenExpiredError(err))
	})

	t.Run("zero validity is already expired", func(t *testing.T) {
		tokenString, err := service.GenerateWithValidity(testUser(), 0)
		assert.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenExpired))
	})

	t.Run("malformed input fails with jwt-not-valid", func(t *testing.T) {
		for _, tokenString := range []string{"", "   ", "garbage", "a.b.c"} {
			claims, err := service.Validate(tokenString)
			assert.Nil(t, claims)
			assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenNotValid), "input %q", tokenString)
		}
	})

	t.Run("token signed with a different secret fails with jwt-not-valid", func(t *testing.T) {
		other, err := auth.NewTokenService(testConfig("other-secret"), nil)
		assert.NoError(t, err)

		tokenString, err := other.Generate(testUser())
		assert.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenNotValid))
		assert.True(t, auth.IsMalformedError(err) || auth.HasTextCode(err, auth.TextCodeTokenNotValid))
	})

	t.Run("truncated token fails with jwt-not-valid", func(t *testing.T) {
		tokenString, err := service.Generate(testUser())
		assert.NoError(t, err)

		_, err = service.Validate(tokenString[:len(tokenString)-4])
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenNotValid))
	})

	t.Run("token with altered payload fails with jwt-not-valid", func(t *testing.T) {
		tokenString, err := service.Generate(testUser())
		assert.NoError(t, err)

		tampered := []byte(tokenString)
		dot := 0
		for i, c := range tampered {
			if c == '.' {
				dot = i
				break
			}
		}
		if tampered[dot+1] == 'A' {
			tampered[dot+1] = 'B'
		} else {
			tampered[dot+1] = 'A'
		}

		_, err = service.Validate(string(tampered))
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenNotValid))
	})

	t.Run("rejects tokens signed with a non HMAC method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": uuid.NewString(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.True(t, auth.HasTextCode(err, auth.TextCodeTokenNotValid))
	})
}
