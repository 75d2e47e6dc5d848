package services

import (
	"context"

	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
)

func dbcOf(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }
