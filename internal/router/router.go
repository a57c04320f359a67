package router

import (
	"encoding/json"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/nodebucket/backend/api/handler"
	"github.com/nodebucket/backend/api/transport"
)

type Handlers struct {
	Employee *apiHandler.EmployeeHandler
	Security *apiHandler.SecurityHandler
	Health   *apiHandler.HealthHandler
}

// New registers the employee task routes. sessionMiddleware may be nil,
// in which case the task routes are open (the documented default).
func New(handlers Handlers, sessionMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	guard := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		if sessionMiddleware == nil {
			return h
		}
		return sessionMiddleware(h)
	}

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/security/signin", handlers.Security.Signin)

	// Employee routes; the sign-in lookup stays open.
	r.GET("/api/employees/{empId}", handlers.Employee.FindEmployee)
	r.GET("/api/employees/{empId}/tasks", guard(handlers.Employee.GetTasks))
	r.POST("/api/employees/{empId}/tasks", guard(handlers.Employee.CreateTask))
	r.PUT("/api/employees/tasks/{empId}", guard(handlers.Employee.UpdateTasks))
	r.DELETE("/api/employees/{empId}/tasks/{taskId}", guard(handlers.Employee.DeleteTask))

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(http.StatusNotFound)
		body, _ := json.Marshal(transport.NewError(http.StatusNotFound, "not found", ""))
		ctx.SetBody(body)
	}

	return r
}
