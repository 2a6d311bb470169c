package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/federation-of-frogs/backend/pkg/errorx"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

// AuthenticateScheduler guards the lifecycle trigger and bootstrap endpoints.
// Callers must present the shared scheduler secret as a bearer token.
func AuthenticateScheduler(ctx context.Context) error {
	secret := xcontext.Configs(ctx).Fotd.CronSecret
	if secret == "" {
		return errorx.New(errorx.Unavailable, "Scheduler secret is not configured")
	}

	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	token, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return nil
}
