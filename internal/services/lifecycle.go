package services

import (
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
)

func recordLifecycle(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(apierr.KindOf(err))
	}
	observability.Current().IncLifecycle(op, outcome)
}
