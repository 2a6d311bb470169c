package middleware

import (
	"context"

	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

func Logger(ctx context.Context) error {
	if req := xcontext.HTTPRequest(ctx); req != nil {
		xcontext.Logger(ctx).Infof("%s | %s", req.Method, req.URL.Path)
	}

	return nil
}
