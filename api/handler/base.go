package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/api/transport"
	"github.com/nodebucket/backend/domain"
	"github.com/nodebucket/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter      *httpcontext.Adapter
	logger       *zap.Logger
	includeStack bool
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger, includeStack bool) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, includeStack: includeStack}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

// respondError is the terminal error path: every failure ends here and
// becomes a {type:"error"} body with the status taken from the error's
// domain code.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}

	var stack string
	if h.includeStack {
		stack = string(debug.Stack())
	}
	h.respondJSON(ctx, status, transport.NewError(status, err.Error(), stack))
}

func (h baseHandler) respondBadRequest(ctx *fasthttp.RequestCtx, message string) {
	h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, message))
}

func statusOf(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid),
		domain.IsDomainError(err, domain.ErrCodeWriteFailed):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
