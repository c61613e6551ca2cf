package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheSize bounds the number of cached user records
var DefaultCacheSize = 512

// DefaultCacheTTL bounds how long a resolved record may be served without
// consulting the authoritative store. A ban issued after a record is cached
// stays invisible until the entry expires, the TTL is the upper bound on
// that staleness window.
var DefaultCacheTTL = 5 * time.Minute

// UserService resolves token subjects to current user records, caching by
// id, and enforces the account ban policy.
type UserService struct {
	store  UserStore
	cache  *expirable.LRU[uuid.UUID, *User]
	logger Logger
	now    func() time.Time
}

type UserServiceOption func(*userServiceOptions)

type userServiceOptions struct {
	cacheSize int
	cacheTTL  time.Duration
	logger    Logger
	now       func() time.Time
}

// WithCacheSize overrides the cache entry bound.
func WithCacheSize(size int) UserServiceOption {
	return func(o *userServiceOptions) {
		if size > 0 {
			o.cacheSize = size
		}
	}
}

// WithCacheTTL overrides the cache staleness bound.
func WithCacheTTL(ttl time.Duration) UserServiceOption {
	return func(o *userServiceOptions) {
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithUserServiceLogger overrides the default logger.
func WithUserServiceLogger(logger Logger) UserServiceOption {
	return func(o *userServiceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for ban checks.
func WithClock(now func() time.Time) UserServiceOption {
	return func(o *userServiceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(store UserStore, opts ...UserServiceOption) *UserService {
	options := &userServiceOptions{
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
		logger:    defLogger{},
		now:       time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return &UserService{
		store:  store,
		cache:  expirable.NewLRU[uuid.UUID, *User](options.cacheSize, nil, options.cacheTTL),
		logger: options.logger,
		now:    options.now,
	}
}

// ExtractID pulls the subject identifier out of verified claims.
func (u *UserService) ExtractID(claims *TokenClaims) (uuid.UUID, error) {
	if claims == nil {
		return uuid.Nil, ErrTokenNotValid
	}

	id, err := claims.UserID()
	if err != nil {
		u.logger.Debug("claims subject %q is not a valid id", claims.Subject())
		return uuid.Nil, notValidError(err)
	}

	return id, nil
}

// Resolve returns the user record for id, serving from cache when a live
// entry exists and falling through to the authoritative store otherwise.
// Successful lookups are cached keyed by id.
func (u *UserService) Resolve(ctx context.Context, id uuid.UUID) (*User, error) {
	if user, ok := u.cache.Get(id); ok {
		return user, nil
	}

	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || HasTextCode(err, TextCodeUserNotFound) {
			return nil, userNotFoundError(id)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	if user == nil {
		return nil, userNotFoundError(id)
	}

	u.cache.Add(id, user)

	return user, nil
}

// CheckNotBanned fails with ErrUserBlocked when the account has a ban
// expiring strictly in the future. It must run after every resolution,
// before any authenticated context is granted.
func (u *UserService) CheckNotBanned(user *User) error {
	if user == nil {
		return userNotFoundError(uuid.Nil)
	}

	if user.IsBanned(u.now()) {
		clone := ErrUserBlocked.Clone()
		return clone.WithMetadata(map[string]any{
			"id":             user.ID.String(),
			"ban_expiration": user.BanExpiration,
		})
	}

	return nil
}

var _ UserResolver = (*UserService)(nil)

func userNotFoundError(id uuid.UUID) error {
	clone := ErrUserNotFound.Clone()
	return clone.WithMetadata(map[string]any{
		"id": id.String(),
	})
}
