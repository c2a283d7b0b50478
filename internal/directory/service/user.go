package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/cryptox"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type UserService struct {
	Store *store.Store
	Users *store.UsersRepo
}

// Create registers a new user. The cleartext password is hashed before
// anything touches storage; when it is empty a random password is
// generated and logged so an operator can hand it over out of band.
//
// A live user already holding the email yields store.ErrDuplicateEmail.
// The pre-check gives the common case a clean error; the UNIQUE
// constraint catches concurrent creates racing past it.
func (s *UserService) Create(ctx context.Context, u *domain.User, password string) (*domain.User, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Users.GetByEmail(ctx, s.Store.DB(), u.Email); err == nil {
		return nil, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			return nil, err
		}
		password = generated
		l.Info("generated password for new user",
			slog.String("email", u.Email),
			slog.String("password", password),
		)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	created, err := s.Users.Create(ctx, s.Store.DB(), u)
	if err != nil {
		return nil, err
	}

	l.Info("user created",
		slog.Int64("user_id", created.ID),
		slog.String("email", created.Email),
	)
	return created, nil
}

// Get returns the live user with the given id, or store.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.Users.Get(ctx, s.Store.DB(), id)
}

// GetByEmail returns the live user with the given email, or
// store.ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByEmail(ctx, s.Store.DB(), email)
}

// List returns live users in id order, paginated by skip/limit.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.Users.List(ctx, s.Store.DB(), skip, limit)
}

// Count returns the number of live users.
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.Users.Count(ctx, s.Store.DB())
}

// Update persists the full user state. A changed password must already
// be hashed; handlers stage it with SetPassword first.
func (s *UserService) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	return s.Users.Update(ctx, s.Store.DB(), u)
}

// SetPassword hashes the cleartext and stages it on the user. The user
// is not persisted; callers follow up with Update.
func (s *UserService) SetPassword(u *domain.User, password string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// Delete soft-deletes the user with the given id. The email is rewritten
// to a tombstone first, so the address immediately frees up for a new
// registration while the audit row keeps its identity recoverable.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	l := slogx.FromContext(ctx)

	err := s.Store.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		u, err := s.Users.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		u.Email = fmt.Sprintf("%s-deleted-%s", u.Email, uuid.NewString())
		return s.Users.Delete(ctx, tx, u)
	})
	if err != nil {
		return err
	}

	l.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// Authenticate checks the credentials and returns the matching live
// user. Unknown email and wrong password both come back as
// ErrInvalidCredentials, indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Users.GetByEmail(ctx, s.Store.DB(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed", slog.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, u.Password); err != nil {
		l.Info("login failed", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
