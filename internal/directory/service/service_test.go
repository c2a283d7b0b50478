package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/cryptox"
	"github.com/tabcorehq/directoryd/pkg/jwtx"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

type testEnv struct {
	store     *store.Store
	users     *UserService
	tokens    *TokenService
	bootstrap *BootstrapService
	logs      *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	s.DB().SetMaxOpenConns(1)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	codec, err := jwtx.NewCodec([]byte("test-secret"), "HS256", 0, 0)
	require.NoError(t, err)

	users := &UserService{Store: s, Users: store.NewUsersRepo()}

	return &testEnv{
		store:     s,
		users:     users,
		tokens:    &TokenService{Codec: codec, Users: users},
		bootstrap: &BootstrapService{Users: users},
		logs:      &bytes.Buffer{},
	}
}

// ctx returns a context carrying a logger that writes into env.logs.
func (e *testEnv) ctx() context.Context {
	logger := slog.New(slog.NewTextHandler(e.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return slogx.WithContext(context.Background(), logger)
}

func TestUserService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	t.Run("hashes the password", func(t *testing.T) {
		created, err := env.users.Create(ctx, &domain.User{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Example",
		}, "s3cret-pass")
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.True(t, strings.HasPrefix(created.Password, "$argon2id$"))
		require.NoError(t, cryptox.VerifyPassword("s3cret-pass", created.Password))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := env.users.Create(ctx, &domain.User{
			Email:     "alice@example.com",
			FirstName: "Other",
			LastName:  "Alice",
		}, "another-pass")
		require.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("empty password is generated and logged", func(t *testing.T) {
		env.logs.Reset()
		created, err := env.users.Create(ctx, &domain.User{
			Email:     "bob@example.com",
			FirstName: "Bob",
			LastName:  "Example",
		}, "")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(created.Password, "$argon2id$"))
		require.Contains(t, env.logs.String(), "generated password for new user")
		require.Contains(t, env.logs.String(), "bob@example.com")
	})
}

func TestUserService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	_, err := env.users.Create(ctx, &domain.User{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
	}, "correct-pass")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := env.users.Authenticate(ctx, "alice@example.com", "correct-pass")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPass := env.users.Authenticate(ctx, "alice@example.com", "wrong-pass")
		_, errUnknown := env.users.Authenticate(ctx, "nobody@example.com", "correct-pass")
		require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrongPass, errUnknown)
	})
}

func TestUserService_Delete_TombstonesEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	created, err := env.users.Create(ctx, &domain.User{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
	}, "pass")
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, created.ID))

	t.Run("user is gone", func(t *testing.T) {
		_, err := env.users.Get(ctx, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = env.users.GetByEmail(ctx, "alice@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("row keeps a tombstoned email", func(t *testing.T) {
		row := &domain.User{}
		err := env.store.DB().NewSelect().Model(row).
			Where("?TableAlias.id = ?", created.ID).
			Scan(ctx)
		require.NoError(t, err)
		require.True(t, row.IsDeleted)
		require.True(t, strings.HasPrefix(row.Email, "alice@example.com-deleted-"))
	})

	t.Run("email can be registered again", func(t *testing.T) {
		_, err := env.users.Create(ctx, &domain.User{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Second",
		}, "new-pass")
		require.NoError(t, err)
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		require.ErrorIs(t, env.users.Delete(ctx, created.ID), store.ErrNotFound)
	})
}

func TestTokenService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	created, err := env.users.Create(ctx, &domain.User{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
	}, "correct-pass")
	require.NoError(t, err)

	t.Run("mints an access/refresh pair", func(t *testing.T) {
		pair, err := env.tokens.Login(ctx, "alice@example.com", "correct-pass")
		require.NoError(t, err)

		access, err := env.tokens.Codec.Decode(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, jwtx.KindAccess, access.Kind)
		require.Equal(t, "alice@example.com", access.Email)
		id, err := access.UserID()
		require.NoError(t, err)
		require.Equal(t, created.ID, id)

		refresh, err := env.tokens.Codec.Decode(pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, jwtx.KindRefresh, refresh.Kind)
		require.Empty(t, refresh.Email, "refresh tokens carry no email claim")
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := env.tokens.Login(ctx, "alice@example.com", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenService_Refresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	created, err := env.users.Create(ctx, &domain.User{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
	}, "correct-pass")
	require.NoError(t, err)

	pair, err := env.tokens.Login(ctx, "alice@example.com", "correct-pass")
	require.NoError(t, err)

	t.Run("mints a new access token", func(t *testing.T) {
		access, err := env.tokens.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		claims, err := env.tokens.Codec.Decode(access)
		require.NoError(t, err)
		require.Equal(t, jwtx.KindAccess, claims.Kind)
		require.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("access token is the wrong kind", func(t *testing.T) {
		_, err := env.tokens.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, jwtx.ErrWrongKind)
	})

	t.Run("garbage token is malformed", func(t *testing.T) {
		_, err := env.tokens.Refresh(ctx, "not.a.token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("expired token", func(t *testing.T) {
		stale, err := env.tokens.Codec.EncodeRefresh(created.ID, time.Now().Add(-16*24*time.Hour))
		require.NoError(t, err)
		_, err = env.tokens.Refresh(ctx, stale)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("deleted subject", func(t *testing.T) {
		require.NoError(t, env.users.Delete(ctx, created.ID))
		_, err := env.tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestBootstrapService_EnsureRootUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx()

	require.NoError(t, env.bootstrap.EnsureRootUser(ctx, "root@example.com", "root-pass"))

	root, err := env.users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword("root-pass", root.Password))
	require.Nil(t, root.CreatedUserID, "bootstrap runs without an acting user")

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, env.bootstrap.EnsureRootUser(ctx, "root@example.com", "rotated-pass"))

		again, err := env.users.GetByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		require.Equal(t, root.Password, again.Password, "existing password is never overwritten")

		count, err := env.users.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("generated password is logged", func(t *testing.T) {
		env.logs.Reset()
		require.NoError(t, env.bootstrap.EnsureRootUser(ctx, "root2@example.com", ""))
		require.Contains(t, env.logs.String(), "generated password for new user")
	})
}
