package middleware

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/api/transport"
)

// TokenValidator checks a signed session token server-side and returns
// the employee id it belongs to.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int, error)
}

// SessionAuth guards routes with the signed session token issued at
// sign-in. Presence of a client-writable cookie is not a security
// boundary; the session must still exist server-side.
func SessionAuth(validator TokenValidator, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				reject(ctx, "missing session token")
				return
			}

			empID, err := validator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Warn("invalid session token", zap.Error(err))
				reject(ctx, "invalid session token")
				return
			}

			ctx.Request.Header.Set("X-Employee-ID", strconv.Itoa(empID))
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(fasthttp.StatusUnauthorized, message, ""))
	ctx.SetBody(body)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
