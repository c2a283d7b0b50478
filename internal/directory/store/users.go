package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
)

// UsersRepo is the generic repository specialized for User rows plus the
// user-specific queries.
type UsersRepo struct {
	*Repository[*domain.User]
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		Repository: NewRepository(ModelHandlers[*domain.User]{
			NewRecord: func() *domain.User { return &domain.User{} },
		}),
	}
}

// GetByEmail returns the first live user with the email, or ErrNotFound.
// Tombstoned emails never match because deleted rows are filtered out
// and their email column is rewritten anyway.
func (r *UsersRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*domain.User, error) {
	return r.First(ctx, db, Where("?TableAlias.email = ?", email))
}

// Create inserts a user, translating a UNIQUE(email) violation into
// ErrDuplicateEmail so concurrent creates racing past the service-level
// pre-check still surface the domain error.
func (r *UsersRepo) Create(ctx context.Context, db bun.IDB, u *domain.User) (*domain.User, error) {
	created, err := r.Repository.Create(ctx, db, u)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

// Update persists the user, translating a UNIQUE(email) violation into
// ErrDuplicateEmail when an email change collides with a live user.
func (r *UsersRepo) Update(ctx context.Context, db bun.IDB, u *domain.User) (*domain.User, error) {
	updated, err := r.Repository.Update(ctx, db, u)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return updated, nil
}
