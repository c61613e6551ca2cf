// Package jwtware is the per-request authentication pipeline: exclusion
// matching, token extraction, signature and expiry verification, user
// resolution, ban checking, and request-context population. Failures are
// translated into structured JSON responses at this boundary, raw errors
// never reach the transport layer.
package jwtware

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"

	auth "github.com/magiavventure/go-jwt"
)

// Config configures the authentication middleware.
type Config struct {
	// TokenValidator verifies raw tokens and returns claims, required
	TokenValidator auth.TokenValidator
	// UserResolver maps claims to the current user record, required
	UserResolver auth.UserResolver

	// HeaderName is the request header carrying the raw token value. The
	// value is used as-is, there is no auth scheme prefix.
	HeaderName string

	// ExcludedEndpoints bypass the pipeline entirely. The check runs before
	// any token work, excluded requests proceed with no identity populated.
	ExcludedEndpoints auth.RuleSet

	// Endpoints are authorization rules enforced after the user resolves:
	// the first matching rule's authorities are required, any-of, exact
	// case sensitive match. Rules with Authenticated=false only take effect
	// when paired with an exclusion rule, the pipeline itself always
	// requires a token for non-excluded requests.
	Endpoints auth.RuleSet

	// Filter skips the middleware when it returns true, evaluated before
	// the exclusion rules
	Filter func(router.Context) bool

	// ContextKey is the router locals key for the resolved user
	ContextKey string
	// TokenKey is the router locals key for the raw token string
	TokenKey string

	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler

	Logger auth.Logger
}

// New builds the authentication middleware from cfg.
func New(config ...Config) router.HandlerFunc {
	cfg := GetDefaultConfig(config...)
	return func(ctx router.Context) error {
		if cfg.Filter != nil && cfg.Filter(ctx) {
			return ctx.Next()
		}

		if cfg.ExcludedEndpoints.Excludes(ctx.Method(), ctx.Path()) {
			return ctx.Next()
		}

		raw, err := extractToken(ctx, cfg.HeaderName)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		id, err := cfg.UserResolver.ExtractID(claims)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		user, err := cfg.UserResolver.Resolve(ctx.Context(), id)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		if err := cfg.UserResolver.CheckNotBanned(user); err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		if err := authorizeEndpoint(user, ctx.Method(), ctx.Path(), cfg.Endpoints); err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		ctx.Locals(cfg.ContextKey, user)
		ctx.Locals(cfg.TokenKey, raw)

		stdCtx := auth.WithCurrentUser(ctx.Context(), user)
		stdCtx = auth.WithToken(stdCtx, raw)
		ctx.SetContext(stdCtx)

		return cfg.SuccessHandler(ctx)
	}
}

// extractToken reads the raw token from the configured header. Absent,
// empty, or whitespace-only values fail as not valid.
func extractToken(ctx router.Context, header string) (string, error) {
	raw := strings.TrimSpace(ctx.GetString(header, ""))
	if raw == "" {
		return "", auth.ErrTokenNotValid
	}
	return raw, nil
}

// authorizeEndpoint enforces the first matching endpoint rule against the
// resolved user. Authority strings match exactly, multiple required
// authorities are any-of. Requests matching no rule default to merely
// requiring authentication, which the pipeline has already established.
func authorizeEndpoint(user *auth.User, method, path string, rules auth.RuleSet) error {
	rule, ok := rules.Match(method, path)
	if !ok || len(rule.Authorities) == 0 {
		return nil
	}

	for _, authority := range rule.Authorities {
		if user.HasAuthority(authority) {
			return nil
		}
	}

	clone := auth.ErrAccessDenied.Clone()
	return clone.WithMetadata(map[string]any{
		"path":     path,
		"method":   method,
		"required": rule.Authorities,
	})
}

// GetDefaultConfig applies defaults and validates required collaborators.
func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.UserResolver == nil {
		panic("AUTH: JWT middleware configuration: UserResolver is required.")
	}

	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = auth.DefaultHeader
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenKey == "" {
		cfg.TokenKey = "token"
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler(cfg.Logger)
	}

	return cfg
}

// DefaultErrorHandler writes the structured failure body for any pipeline
// error and terminates the request.
func DefaultErrorHandler(logger auth.Logger) router.ErrorHandler {
	if logger == nil {
		logger = noopLogger{}
	}

	return func(ctx router.Context, err error) error {
		httpErr := auth.MapError(err)

		var richErr *errors.Error
		if errors.As(err, &richErr) && len(richErr.Metadata) > 0 {
			logger.Info(
				"authentication failed code=%s status=%d metadata=%s",
				httpErr.Code,
				httpErr.Status,
				print.MaybePrettyJSON(richErr.Metadata),
			)
		} else {
			logger.Info("authentication failed code=%s status=%d", httpErr.Code, httpErr.Status)
		}

		return ctx.JSON(httpErr.Status, httpErr)
	}
}

// FromConfig builds middleware wired from the shared configuration surface:
// the token codec doubles as validator and the resolver is wrapped as-is.
func FromConfig(cfg auth.Config, validator auth.TokenValidator, resolver auth.UserResolver) router.HandlerFunc {
	return New(Config{
		TokenValidator:    validator,
		UserResolver:      resolver,
		HeaderName:        cfg.GetHeader(),
		ExcludedEndpoints: cfg.GetExcludedEndpoints(),
		Endpoints:         cfg.GetEndpoints(),
	})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
