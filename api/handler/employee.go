package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/api/transport"
	"github.com/nodebucket/backend/pkg/httpcontext"
	tasksUC "github.com/nodebucket/backend/usecase/tasks"
)

type EmployeeHandler struct {
	baseHandler
	uc *tasksUC.UseCase
}

func NewEmployeeHandler(uc *tasksUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, includeStack bool) *EmployeeHandler {
	return &EmployeeHandler{
		baseHandler: newBaseHandler(adapter, logger, includeStack),
		uc:          uc,
	}
}

// @Summary Find employee by id
// @Tags employees
// @Router /api/employees/{empId} [get]
func (h *EmployeeHandler) FindEmployee(ctx *fasthttp.RequestCtx) {
	empID, ok := h.empID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	emp, err := h.uc.Tasks(stdCtx, empID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, emp)
}

// @Summary List an employee's tasks
// @Tags tasks
// @Router /api/employees/{empId}/tasks [get]
func (h *EmployeeHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	empID, ok := h.empID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	emp, err := h.uc.Tasks(stdCtx, empID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, emp)
}

// @Summary Create a task
// @Tags tasks
// @Router /api/employees/{empId}/tasks [post]
func (h *EmployeeHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	empID, ok := h.empID(ctx)
	if !ok {
		return
	}

	payload, ok := h.parsePayload(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.uc.CreateTask(stdCtx, empID, payload)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.CreatedTask{ID: id.Hex()})
}

// @Summary Replace both task lists
// @Tags tasks
// @Router /api/employees/tasks/{empId} [put]
func (h *EmployeeHandler) UpdateTasks(ctx *fasthttp.RequestCtx) {
	empID, ok := h.empID(ctx)
	if !ok {
		return
	}

	payload, ok := h.parsePayload(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ReplaceTaskLists(stdCtx, empID, payload); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/employees/{empId}/tasks/{taskId} [delete]
func (h *EmployeeHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	empID, ok := h.empID(ctx)
	if !ok {
		return
	}

	taskID, _ := ctx.UserValue("taskId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, empID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// empID parses the path parameter before any database access; anything
// non-numeric stops the request with a 400.
func (h *EmployeeHandler) empID(ctx *fasthttp.RequestCtx) (int, bool) {
	raw, _ := ctx.UserValue("empId").(string)
	empID, err := strconv.Atoi(raw)
	if err != nil {
		h.respondBadRequest(ctx, "input must be a number")
		return 0, false
	}
	return empID, true
}

func (h *EmployeeHandler) parsePayload(ctx *fasthttp.RequestCtx) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
		h.respondBadRequest(ctx, "invalid task payload")
		return nil, false
	}
	return payload, true
}
