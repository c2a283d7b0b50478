package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/pkg/httpx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err)
	// A single in-memory sqlite database must stay on one connection.
	s.DB().SetMaxOpenConns(1)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(n int) *domain.User {
	return &domain.User{
		Email:     fmt.Sprintf("user%d@example.com", n),
		Password:  "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
	}
}

func TestRepository_Create_Stamping(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	t.Run("no actor leaves created_user_id empty", func(t *testing.T) {
		created, err := users.Create(ctx, s.DB(), testUser(1))
		require.NoError(t, err)
		require.NotZero(t, created.ID, "generated id must be populated")
		require.Nil(t, created.CreatedUserID)
		require.False(t, created.CreatedAt.IsZero())
		require.Nil(t, created.UpdatedUserID)
		require.Nil(t, created.UpdatedAt)
	})

	t.Run("actor in context is stamped", func(t *testing.T) {
		actorCtx := httpx.WithActor(ctx, 1)
		created, err := users.Create(actorCtx, s.DB(), testUser(2))
		require.NoError(t, err)
		require.NotNil(t, created.CreatedUserID)
		require.Equal(t, int64(1), *created.CreatedUserID)
	})
}

func TestRepository_Update_Stamping(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	created, err := users.Create(ctx, s.DB(), testUser(1))
	require.NoError(t, err)
	createdAt := created.CreatedAt

	created.FirstName = "Renamed"
	updated, err := users.Update(httpx.WithActor(ctx, 9), s.DB(), created)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	require.NotNil(t, updated.UpdatedUserID)
	require.Equal(t, int64(9), *updated.UpdatedUserID)

	got, err := users.Get(ctx, s.DB(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.FirstName)
	require.Equal(t, createdAt.Unix(), got.CreatedAt.Unix(), "created_at is immutable")
}

func TestRepository_SoftDelete(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	created, err := users.Create(ctx, s.DB(), testUser(1))
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, s.DB(), created))

	t.Run("invisible to Get", func(t *testing.T) {
		_, err := users.Get(ctx, s.DB(), created.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invisible to List and Count", func(t *testing.T) {
		list, err := users.List(ctx, s.DB(), 0, 10)
		require.NoError(t, err)
		require.Empty(t, list)

		count, err := users.Count(ctx, s.DB())
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("row still exists with is_deleted set", func(t *testing.T) {
		row := &domain.User{}
		err := s.DB().NewSelect().Model(row).
			Where("?TableAlias.id = ?", created.ID).
			Scan(ctx)
		require.NoError(t, err)
		require.True(t, row.IsDeleted)
		require.NotNil(t, row.UpdatedAt, "delete routes through update stamping")
	})
}

func TestRepository_DeleteByID(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	created, err := users.Create(ctx, s.DB(), testUser(1))
	require.NoError(t, err)

	require.NoError(t, users.DeleteByID(ctx, s.DB(), created.ID))

	t.Run("missing id", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteByID(ctx, s.DB(), 9999), ErrNotFound)
	})

	t.Run("already deleted id", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteByID(ctx, s.DB(), created.ID), ErrNotFound)
	})
}

func TestRepository_List_Pagination(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := users.Create(ctx, s.DB(), testUser(i))
		require.NoError(t, err)
	}

	first, err := users.List(ctx, s.DB(), 0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)

	rest, err := users.List(ctx, s.DB(), 3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	// Storage order: ids ascend across the pages without overlap.
	require.Less(t, first[2].ID, rest[0].ID)

	count, err := users.Count(ctx, s.DB())
	require.NoError(t, err)
	require.Equal(t, 5, count)

	t.Run("zero limit selects nothing", func(t *testing.T) {
		none, err := users.List(ctx, s.DB(), 0, 0)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("zero limit with skip selects nothing", func(t *testing.T) {
		none, err := users.List(ctx, s.DB(), 3, 0)
		require.NoError(t, err)
		require.Empty(t, none)
	})
}

func TestUsersRepo_GetByEmail(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	created, err := users.Create(ctx, s.DB(), testUser(1))
	require.NoError(t, err)

	got, err := users.GetByEmail(ctx, s.DB(), created.Email)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = users.GetByEmail(ctx, s.DB(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUsersRepo_Create_UniqueConstraintBackstop(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	_, err := users.Create(ctx, s.DB(), testUser(1))
	require.NoError(t, err)

	// Same email straight at the repo, bypassing any service pre-check:
	// the storage constraint must still refuse it.
	_, err = users.Create(ctx, s.DB(), testUser(1))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestStore_RunInTx_RollsBack(t *testing.T) {
	s := newTestStore(t)
	users := NewUsersRepo()
	ctx := context.Background()

	err := s.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := users.Create(ctx, tx, testUser(1)); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	count, err := users.Count(ctx, s.DB())
	require.NoError(t, err)
	require.Zero(t, count, "staged write must not be visible after rollback")
}
