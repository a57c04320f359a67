package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/api/transport"
	"github.com/nodebucket/backend/pkg/httpcontext"
	authUC "github.com/nodebucket/backend/usecase/auth"
)

type SecurityHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewSecurityHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, includeStack bool) *SecurityHandler {
	return &SecurityHandler{
		baseHandler: newBaseHandler(adapter, logger, includeStack),
		uc:          uc,
	}
}

// @Summary Sign in with an employee id
// @Tags security
// @Router /api/security/signin [post]
func (h *SecurityHandler) Signin(ctx *fasthttp.RequestCtx) {
	var req transport.SigninRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.EmpID <= 0 {
		h.respondBadRequest(ctx, "input must be a number")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Signin(stdCtx, req.EmpID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, result)
}
