package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task is a single board item. A task has no status field: the list it
// lives in (todo or done) is its status.
type Task struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Text string             `bson:"text" json:"text"`
}

// Employee is one employee document holding the two ordered task lists.
// Documents are provisioned outside this service; empId is the sole
// lookup key and never changes.
type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EmpID     int                `bson:"empId" json:"empId"`
	FirstName string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Todo      []Task             `bson:"todo,omitempty" json:"todo"`
	Done      []Task             `bson:"done,omitempty" json:"done"`
}
