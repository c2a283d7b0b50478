package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/pkg/httpx"
)

// SelectCriteria narrows a query, e.g. an equality predicate. The
// soft-delete filter is always applied on top of any criteria.
type SelectCriteria func(*bun.SelectQuery) *bun.SelectQuery

// Where builds an equality/expression criterion. The expression may use
// ?TableAlias to refer to the model's table.
func Where(expr string, args ...any) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(expr, args...)
	}
}

// ModelHandlers carry the per-entity hooks the generic repository cannot
// derive from the type parameter itself.
type ModelHandlers[T domain.Record] struct {
	NewRecord func() T
}

// Repository is the generic audit-stamped persistence layer. Every
// entity type goes through it so soft-delete visibility and audit
// stamping are enforced uniformly instead of hand-rolled per service.
//
// Methods take a bun.IDB: pass Store.DB() for immediately durable writes
// or a RunInTx handle to stage several writes into one atomic unit.
type Repository[T domain.Record] struct {
	handlers ModelHandlers[T]
}

func NewRepository[T domain.Record](handlers ModelHandlers[T]) *Repository[T] {
	return &Repository[T]{handlers: handlers}
}

// query is the base SELECT with the soft-delete filter every default
// read path must carry.
func (r *Repository[T]) query(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().Model(model).Where("?TableAlias.is_deleted = ?", false)
}

// Get returns the live entity with the given id, or ErrNotFound. Rows
// with is_deleted set are invisible here.
func (r *Repository[T]) Get(ctx context.Context, db bun.IDB, id int64) (T, error) {
	rec := r.handlers.NewRecord()
	err := r.query(db, rec).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		return zero, mapNotFound(err)
	}
	return rec, nil
}

// List returns live entities in storage order, paginated by skip/limit.
// A non-positive limit selects nothing: bun drops the LIMIT clause for
// limit 0, which would turn the query unbounded (and leave a dangling
// OFFSET SQLite rejects), so it never reaches SQL.
func (r *Repository[T]) List(
	ctx context.Context,
	db bun.IDB,
	skip, limit int,
	criteria ...SelectCriteria,
) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}

	records := make([]T, 0)
	q := r.query(db, &records)
	for _, c := range criteria {
		q = c(q)
	}
	err := q.
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of live entities matching the criteria.
func (r *Repository[T]) Count(ctx context.Context, db bun.IDB, criteria ...SelectCriteria) (int, error) {
	q := r.query(db, r.handlers.NewRecord())
	for _, c := range criteria {
		q = c(q)
	}
	return q.Count(ctx)
}

// First returns the first live entity matching the criteria, or
// ErrNotFound.
func (r *Repository[T]) First(ctx context.Context, db bun.IDB, criteria ...SelectCriteria) (T, error) {
	rec := r.handlers.NewRecord()
	q := r.query(db, rec)
	for _, c := range criteria {
		q = c(q)
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		var zero T
		return zero, mapNotFound(err)
	}
	return rec, nil
}

// Create stamps the audit fields from the acting user in ctx, inserts
// the entity and populates its generated id. Update stamps are cleared.
func (r *Repository[T]) Create(ctx context.Context, db bun.IDB, rec T) (T, error) {
	rec.StampCreate(actorFrom(ctx), time.Now().UTC())
	if _, err := db.NewInsert().Model(rec).Exec(ctx); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update stamps updated_user_id/updated_at and persists the full entity
// state. created_at is never touched after creation.
func (r *Repository[T]) Update(ctx context.Context, db bun.IDB, rec T) (T, error) {
	rec.StampUpdate(actorFrom(ctx), time.Now().UTC())
	if _, err := db.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Delete is logical, not physical: it flips is_deleted and routes
// through Update so the delete also carries update stamps.
func (r *Repository[T]) Delete(ctx context.Context, db bun.IDB, rec T) error {
	rec.MarkDeleted()
	_, err := r.Update(ctx, db, rec)
	return err
}

// DeleteByID soft-deletes the live entity with the given id, or returns
// ErrNotFound when no live entity exists.
func (r *Repository[T]) DeleteByID(ctx context.Context, db bun.IDB, id int64) error {
	rec, err := r.Get(ctx, db, id)
	if err != nil {
		return err
	}
	return r.Delete(ctx, db, rec)
}

// actorFrom reads the acting user id bound to the request context.
// Nil when no authenticated actor, e.g. bootstrap.
func actorFrom(ctx context.Context) *int64 {
	if id, ok := httpx.ActorID(ctx); ok {
		return &id
	}
	return nil
}
