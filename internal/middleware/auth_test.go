package middleware

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/nodebucket/backend/api/transport"
	"github.com/nodebucket/backend/domain"
)

type fakeValidator struct {
	empID int
	err   error
}

func (f *fakeValidator) ValidateToken(context.Context, string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.empID, nil
}

func invoke(validator *fakeValidator, authorization string) (*fasthttp.RequestCtx, bool) {
	called := false
	wrapped := SessionAuth(validator, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/employees/1007/tasks")
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	wrapped(ctx)
	return ctx, called
}

func TestSessionAuth_ValidToken(t *testing.T) {
	ctx, called := invoke(&fakeValidator{empID: 1007}, "Bearer some-token")

	assert.True(t, called)
	assert.Equal(t, "1007", string(ctx.Request.Header.Peek("X-Employee-ID")))
}

func TestSessionAuth_MissingToken(t *testing.T) {
	ctx, called := invoke(&fakeValidator{empID: 1007}, "")

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())

	var errBody transport.ErrorBody
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errBody))
	assert.Equal(t, "error", errBody.Type)
	assert.Equal(t, "missing session token", errBody.Message)
}

func TestSessionAuth_RejectedToken(t *testing.T) {
	ctx, called := invoke(&fakeValidator{err: domain.ErrUnauthorized}, "Bearer stale")

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestSessionAuth_BareTokenWithoutBearerPrefix(t *testing.T) {
	_, called := invoke(&fakeValidator{empID: 1007}, "raw-token")

	assert.True(t, called)
}
