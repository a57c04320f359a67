package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nodebucket/backend/domain"
)

// EmployeeRepository is the port for employee task persistence.
type EmployeeRepository interface {
	// FindByID returns the full employee document.
	FindByID(ctx context.Context, empID int) (*domain.Employee, error)

	// GetTasks returns the employee projected to empId, todo and done.
	GetTasks(ctx context.Context, empID int) (*domain.Employee, error)

	// AppendTask generates a task id and appends {_id, text} to the end
	// of the todo list, initializing the list first when absent.
	AppendTask(ctx context.Context, empID int, text string) (primitive.ObjectID, error)

	// ReplaceTaskLists overwrites both lists wholesale. The submitted
	// order and membership become authoritative.
	ReplaceTaskLists(ctx context.Context, empID int, todo, done []domain.Task) error

	// RemoveTask filters the task id out of both lists and persists the
	// result. Removing an id that is not present is not an error.
	RemoveTask(ctx context.Context, empID int, taskID string) error
}
