package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nodebucket/backend/api/transport"
	"github.com/nodebucket/backend/domain"
	tasksUC "github.com/nodebucket/backend/usecase/tasks"
)

// memRepo reproduces the store semantics the handlers are mapped onto:
// append initializes a missing todo list, replace overwrites wholesale,
// remove filters both lists and tolerates unknown ids.
type memRepo struct {
	employees map[int]*domain.Employee
	calls     int
}

func newMemRepo(empIDs ...int) *memRepo {
	r := &memRepo{employees: make(map[int]*domain.Employee)}
	for _, id := range empIDs {
		r.employees[id] = &domain.Employee{EmpID: id}
	}
	return r
}

func (r *memRepo) FindByID(ctx context.Context, empID int) (*domain.Employee, error) {
	return r.GetTasks(ctx, empID)
}

func (r *memRepo) GetTasks(_ context.Context, empID int) (*domain.Employee, error) {
	r.calls++
	emp, ok := r.employees[empID]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *memRepo) AppendTask(_ context.Context, empID int, text string) (primitive.ObjectID, error) {
	r.calls++
	emp, ok := r.employees[empID]
	if !ok {
		return primitive.NilObjectID, domain.ErrTaskNotCreated
	}
	if emp.Todo == nil {
		emp.Todo = []domain.Task{}
	}
	task := domain.Task{ID: primitive.NewObjectID(), Text: text}
	emp.Todo = append(emp.Todo, task)
	return task.ID, nil
}

func (r *memRepo) ReplaceTaskLists(_ context.Context, empID int, todo, done []domain.Task) error {
	r.calls++
	emp, ok := r.employees[empID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	emp.Todo = todo
	emp.Done = done
	return nil
}

func (r *memRepo) RemoveTask(_ context.Context, empID int, taskID string) error {
	r.calls++
	emp, ok := r.employees[empID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	filter := func(tasks []domain.Task) []domain.Task {
		out := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID.Hex() != taskID {
				out = append(out, t)
			}
		}
		return out
	}
	emp.Todo = filter(emp.Todo)
	emp.Done = filter(emp.Done)
	return nil
}

func newHandler(repo *memRepo) *EmployeeHandler {
	return NewEmployeeHandler(tasksUC.New(repo, nil), nil, nil, false)
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) transport.ErrorBody {
	t.Helper()
	var errBody transport.ErrorBody
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errBody))
	return errBody
}

func TestFindEmployee_NonNumericID(t *testing.T) {
	repo := newMemRepo(1007)
	h := newHandler(repo)

	ctx := newRequestCtx(fasthttp.MethodGet, "/api/employees/foo", nil)
	ctx.SetUserValue("empId", "foo")

	h.FindEmployee(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	errBody := decodeError(t, ctx)
	assert.Equal(t, "error", errBody.Type)
	assert.Equal(t, http.StatusBadRequest, errBody.Status)
	assert.Equal(t, "input must be a number", errBody.Message)
	// the database is never consulted for a bad id
	assert.Zero(t, repo.calls)
}

func TestGetTasks_UnknownEmployee(t *testing.T) {
	h := newHandler(newMemRepo())

	ctx := newRequestCtx(fasthttp.MethodGet, "/api/employees/999999/tasks", nil)
	ctx.SetUserValue("empId", "999999")

	h.GetTasks(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "employee not found", decodeError(t, ctx).Message)
}

func TestCreateTask_ReturnsGeneratedID(t *testing.T) {
	repo := newMemRepo(1007)
	h := newHandler(repo)

	ctx := newRequestCtx(fasthttp.MethodPost, "/api/employees/1007/tasks", []byte(`{"text":"buy milk"}`))
	ctx.SetUserValue("empId", "1007")

	h.CreateTask(ctx)

	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	var created transport.CreatedTask
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &created))
	assert.Len(t, created.ID, 24)

	require.Len(t, repo.employees[1007].Todo, 1)
	assert.Equal(t, "buy milk", repo.employees[1007].Todo[0].Text)
	assert.Equal(t, created.ID, repo.employees[1007].Todo[0].ID.Hex())
}

func TestCreateTask_InvalidPayloadAddsNothing(t *testing.T) {
	repo := newMemRepo(1007)
	h := newHandler(repo)

	ctx := newRequestCtx(fasthttp.MethodPost, "/api/employees/1007/tasks", []byte(`{}`))
	ctx.SetUserValue("empId", "1007")

	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "invalid task payload")
	assert.Empty(t, repo.employees[1007].Todo)
}

func TestCreateTask_MalformedJSON(t *testing.T) {
	h := newHandler(newMemRepo(1007))

	ctx := newRequestCtx(fasthttp.MethodPost, "/api/employees/1007/tasks", []byte(`{"text":`))
	ctx.SetUserValue("empId", "1007")

	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUpdateTasks_ReplacesBothLists(t *testing.T) {
	repo := newMemRepo(1007)
	id := primitive.NewObjectID()
	repo.employees[1007].Todo = []domain.Task{{ID: id, Text: "move me"}}
	h := newHandler(repo)

	body := []byte(`{"todo":[],"done":[{"_id":"` + id.Hex() + `","text":"move me"}]}`)
	ctx := newRequestCtx(fasthttp.MethodPut, "/api/employees/tasks/1007", body)
	ctx.SetUserValue("empId", "1007")

	h.UpdateTasks(ctx)

	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Empty(t, repo.employees[1007].Todo)
	require.Len(t, repo.employees[1007].Done, 1)
	assert.Equal(t, id, repo.employees[1007].Done[0].ID)
}

func TestUpdateTasks_UnknownEmployee(t *testing.T) {
	h := newHandler(newMemRepo())

	ctx := newRequestCtx(fasthttp.MethodPut, "/api/employees/tasks/999999", []byte(`{"todo":[],"done":[]}`))
	ctx.SetUserValue("empId", "999999")

	h.UpdateTasks(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestDeleteTask_IsIdempotent(t *testing.T) {
	repo := newMemRepo(1007)
	id := primitive.NewObjectID()
	repo.employees[1007].Todo = []domain.Task{{ID: id, Text: "delete me"}}
	h := newHandler(repo)

	for i := 0; i < 2; i++ {
		ctx := newRequestCtx(fasthttp.MethodDelete, "/api/employees/1007/tasks/"+id.Hex(), nil)
		ctx.SetUserValue("empId", "1007")
		ctx.SetUserValue("taskId", id.Hex())

		h.DeleteTask(ctx)

		assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
	}
	assert.Empty(t, repo.employees[1007].Todo)
}

func TestRespondError_IncludesStackOutsideProduction(t *testing.T) {
	repo := newMemRepo()
	h := NewEmployeeHandler(tasksUC.New(repo, nil), nil, nil, true)

	ctx := newRequestCtx(fasthttp.MethodGet, "/api/employees/999999/tasks", nil)
	ctx.SetUserValue("empId", "999999")

	h.GetTasks(ctx)

	assert.NotEmpty(t, decodeError(t, ctx).Stack)
}

func TestRespondError_NoStackInProduction(t *testing.T) {
	h := newHandler(newMemRepo())

	ctx := newRequestCtx(fasthttp.MethodGet, "/api/employees/999999/tasks", nil)
	ctx.SetUserValue("empId", "999999")

	h.GetTasks(ctx)

	assert.Empty(t, decodeError(t, ctx).Stack)
}
