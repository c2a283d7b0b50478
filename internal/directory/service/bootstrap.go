package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

type BootstrapService struct {
	Users *UserService
}

// EnsureRootUser guarantees a live user exists for the configured root
// email, creating one on first boot. Idempotent: subsequent boots find
// the user and do nothing, so the configured password never overwrites
// a rotated one.
//
// With an empty password the usual generated-password path applies and
// the cleartext is logged once for the operator to collect.
func (s *BootstrapService) EnsureRootUser(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		l.Debug("root user present", slog.String("email", email))
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	created, err := s.Users.Create(ctx, &domain.User{
		Email:     email,
		FirstName: "Root",
		LastName:  "User",
	}, password)
	if err != nil {
		// Two instances booting against the same database race here;
		// losing the race means the root user exists, which is the goal.
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	l.Info("root user created",
		slog.Int64("user_id", created.ID),
		slog.String("email", created.Email),
	)
	return nil
}
