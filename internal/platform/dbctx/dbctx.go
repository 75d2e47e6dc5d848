package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repositories fall back to their own handle when Tx is nil.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the transaction when present, else base, bound to the context.
func (c Context) Conn(base *gorm.DB) *gorm.DB {
	t := c.Tx
	if t == nil {
		t = base
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return t.WithContext(ctx)
}
