package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/federation-of-frogs/backend/pkg/errorx"
	"github.com/federation-of-frogs/backend/pkg/testutil"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateScheduler(t *testing.T) {
	ctx := testutil.MockContext()

	req := httptest.NewRequest("GET", "/processFOTDWinner", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	require.NoError(t, AuthenticateScheduler(xcontext.WithHTTPRequest(ctx, req)))

	req = httptest.NewRequest("GET", "/processFOTDWinner", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret")
	err := AuthenticateScheduler(xcontext.WithHTTPRequest(ctx, req))
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	// Missing header entirely.
	req = httptest.NewRequest("GET", "/processFOTDWinner", nil)
	err = AuthenticateScheduler(xcontext.WithHTTPRequest(ctx, req))
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
