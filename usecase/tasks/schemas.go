package tasks

import "github.com/nodebucket/backend/pkg/schema"

// Rule books for the task payloads, checked before any mutation.

var singleTaskSchema = &schema.Schema{
	Fields: []schema.Field{
		{Name: "text", Type: schema.String, Required: true},
	},
}

var taskItemSchema = &schema.Schema{
	Fields: []schema.Field{
		{Name: "_id", Type: schema.String, Required: true},
		{Name: "text", Type: schema.String, Required: true},
	},
}

// Every item a client can submit on a bulk replace came from the server,
// so ids are required here and only generated on create.
var taskListsSchema = &schema.Schema{
	Fields: []schema.Field{
		{Name: "todo", Type: schema.Array, Required: true, Elem: taskItemSchema},
		{Name: "done", Type: schema.Array, Required: true, Elem: taskItemSchema},
	},
}
