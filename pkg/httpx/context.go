package httpx

import (
	"context"

	"github.com/tabcorehq/directoryd/pkg/jwtx"
)

type ctxKey string

const (
	ctxKeyActorID ctxKey = "actor_id"
	ctxKeyClaims  ctxKey = "claims"
)

// WithActor binds the acting user id to the request context. The context
// itself provides per-request isolation; there is no process-wide cell.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKeyActorID, userID)
}

// ActorID returns the acting user id bound to the context, if any.
// Downstream repository writes read this to stamp audit fields.
func ActorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyActorID).(int64)
	return id, ok
}

// WithClaims attaches verified token claims for downstream handlers.
func WithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

// ClaimsFromContext returns the verified claims attached by RequireAccess.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(jwtx.Claims)
	return c, ok
}
