package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/domain"
	"github.com/nodebucket/backend/repository"
)

type UseCase struct {
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

func New(employees repository.EmployeeRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		employees: employees,
		logger:    logger,
	}
}

// Tasks returns the employee record projected to empId, todo and done.
// Absent lists come back sparse, exactly as stored.
func (uc *UseCase) Tasks(ctx context.Context, empID int) (*domain.Employee, error) {
	return uc.employees.GetTasks(ctx, empID)
}

// CreateTask validates the raw payload against the single-task schema
// and appends the task to the employee's todo list. Nothing is written
// when validation fails.
func (uc *UseCase) CreateTask(ctx context.Context, empID int, payload map[string]any) (primitive.ObjectID, error) {
	if errs := singleTaskSchema.Validate(payload); len(errs) > 0 {
		uc.logger.Warn("invalid task payload",
			zap.Int("empId", empID),
			zap.String("errors", errs.Error()),
		)
		return primitive.NilObjectID, domain.WrapError(domain.ErrCodeInvalid, "invalid task payload", errs)
	}

	text := payload["text"].(string)
	return uc.employees.AppendTask(ctx, empID, text)
}

// ReplaceTaskLists overwrites both lists with the submitted ones. The
// employee lookup runs first so an unknown empId reports not-found even
// when the payload is also malformed.
func (uc *UseCase) ReplaceTaskLists(ctx context.Context, empID int, payload map[string]any) error {
	if _, err := uc.employees.GetTasks(ctx, empID); err != nil {
		return err
	}

	if errs := taskListsSchema.Validate(payload); len(errs) > 0 {
		uc.logger.Warn("invalid task list payload",
			zap.Int("empId", empID),
			zap.String("errors", errs.Error()),
		)
		return domain.WrapError(domain.ErrCodeInvalid, "invalid task payload", errs)
	}

	todo, err := toTasks(payload["todo"])
	if err != nil {
		return err
	}
	done, err := toTasks(payload["done"])
	if err != nil {
		return err
	}

	return uc.employees.ReplaceTaskLists(ctx, empID, todo, done)
}

// DeleteTask removes the task id from both lists. Deleting an id that
// is not present succeeds.
func (uc *UseCase) DeleteTask(ctx context.Context, empID int, taskID string) error {
	return uc.employees.RemoveTask(ctx, empID, taskID)
}

// toTasks converts schema-validated list items into domain tasks.
func toTasks(value any) ([]domain.Task, error) {
	items, _ := value.([]any)
	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		obj := item.(map[string]any)
		id, err := primitive.ObjectIDFromHex(obj["_id"].(string))
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid task id", err)
		}
		tasks = append(tasks, domain.Task{ID: id, Text: obj["text"].(string)})
	}
	return tasks, nil
}
