package auth

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UsersRepository is the bun backed authoritative user store.
type UsersRepository struct {
	repo repository.Repository[*User]
	db   *bun.DB
}

var _ UserStore = (*UsersRepository)(nil)

// NewUsersRepository creates a UsersRepository over the given database.
func NewUsersRepository(db *bun.DB) *UsersRepository {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &UsersRepository{
		repo: repo,
		db:   db,
	}
}

// GetByID returns the user record for id or ErrUserNotFound.
func (a *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, userNotFoundError(id)
		}
		return nil, err
	}

	return record, nil
}

// Create inserts a user record, assigning an id when missing.
func (a *UsersRepository) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

// CreateTx inserts a user record within the given transaction.
func (a *UsersRepository) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.repo.CreateTx(ctx, tx, record)
}
