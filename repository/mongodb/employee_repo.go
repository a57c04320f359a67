package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nodebucket/backend/domain"
	"github.com/nodebucket/backend/repository"
)

type employeeRepository struct {
	col *mongo.Collection
}

// NewEmployeeRepository returns a MongoDB-backed implementation of EmployeeRepository.
func NewEmployeeRepository(db *mongo.Database, collection string) repository.EmployeeRepository {
	if collection == "" {
		collection = "employees"
	}
	return &employeeRepository{col: db.Collection(collection)}
}

// run bounds one unit of work against the collection. Driver errors that
// carry no domain classification are tagged internal so the terminal
// handler reports them as a 500.
func (r *employeeRepository) run(op string, fn func() error) error {
	if err := fn(); err != nil {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInternal, op, err)
	}
	return nil
}

func (r *employeeRepository) FindByID(ctx context.Context, empID int) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.run("find employee", func() error {
		if err := r.col.FindOne(ctx, bson.M{"empId": empID}).Decode(&emp); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrEmployeeNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetTasks(ctx context.Context, empID int) (*domain.Employee, error) {
	projection := options.FindOne().SetProjection(bson.M{"empId": 1, "todo": 1, "done": 1})

	var emp domain.Employee
	err := r.run("get tasks", func() error {
		if err := r.col.FindOne(ctx, bson.M{"empId": empID}, projection).Decode(&emp); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrEmployeeNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) AppendTask(ctx context.Context, empID int, text string) (primitive.ObjectID, error) {
	task := domain.Task{ID: primitive.NewObjectID(), Text: text}

	err := r.run("append task", func() error {
		var emp domain.Employee
		err := r.col.FindOne(ctx, bson.M{"empId": empID}).Decode(&emp)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments), err == nil && emp.Todo == nil:
			// Idempotent: a concurrent initializer leaves the same empty
			// list behind.
			if _, err := r.col.UpdateOne(ctx,
				bson.M{"empId": empID},
				bson.M{"$set": bson.M{"todo": []domain.Task{}}},
			); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		res, err := r.col.UpdateOne(ctx,
			bson.M{"empId": empID},
			bson.M{"$push": bson.M{"todo": task}},
		)
		if err != nil {
			return err
		}
		if res.ModifiedCount == 0 {
			return domain.ErrTaskNotCreated
		}
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return task.ID, nil
}

func (r *employeeRepository) ReplaceTaskLists(ctx context.Context, empID int, todo, done []domain.Task) error {
	if todo == nil {
		todo = []domain.Task{}
	}
	if done == nil {
		done = []domain.Task{}
	}

	return r.run("replace task lists", func() error {
		_, err := r.col.UpdateOne(ctx,
			bson.M{"empId": empID},
			bson.M{"$set": bson.M{"todo": todo, "done": done}},
		)
		return err
	})
}

func (r *employeeRepository) RemoveTask(ctx context.Context, empID int, taskID string) error {
	return r.run("remove task", func() error {
		var emp domain.Employee
		if err := r.col.FindOne(ctx, bson.M{"empId": empID}).Decode(&emp); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrEmployeeNotFound
			}
			return err
		}

		// The task is expected in at most one list; filtering both is
		// safe and makes the delete idempotent.
		_, err := r.col.UpdateOne(ctx,
			bson.M{"empId": empID},
			bson.M{"$set": bson.M{
				"todo": withoutTask(emp.Todo, taskID),
				"done": withoutTask(emp.Done, taskID),
			}},
		)
		return err
	})
}

// withoutTask filters id out of tasks, treating a missing list as empty.
func withoutTask(tasks []domain.Task, id string) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID.Hex() != id {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
