// Package inflight rejects a second identical trigger of one rendered form
// while the first is still waiting for the backend.
package inflight

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type scopeKey struct{}

// WithScope marks ctx as one client's trigger. Requests from different
// scopes never share a key.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// Scope returns the trigger scope of ctx, or "" when the request carries none.
func Scope(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope
}

// Key builds a fixed-size guard key for an operation and its inputs, so user
// text never ends up verbatim in a Redis key.
func Key(operation string, parts ...string) string {
	name := operation + "\x00" + strings.Join(parts, "\x00")

	return "inflight:" + operation + ":" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
