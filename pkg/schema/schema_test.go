package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTask() *Schema {
	return &Schema{
		Fields: []Field{
			{Name: "text", Type: String, Required: true},
		},
	}
}

func taskLists() *Schema {
	item := &Schema{
		Fields: []Field{
			{Name: "_id", Type: String, Required: true},
			{Name: "text", Type: String, Required: true},
		},
	}
	return &Schema{
		Fields: []Field{
			{Name: "todo", Type: Array, Required: true, Elem: item},
			{Name: "done", Type: Array, Required: true, Elem: item},
		},
	}
}

func TestValidate_SingleTask(t *testing.T) {
	s := singleTask()

	assert.Nil(t, s.Validate(map[string]any{"text": "buy milk"}))
}

func TestValidate_MissingRequired(t *testing.T) {
	s := singleTask()

	errs := s.Validate(map[string]any{})

	require.Len(t, errs, 1)
	assert.Equal(t, "text", errs[0].Field)
	assert.Equal(t, "required property missing", errs[0].Message)
}

func TestValidate_WrongType(t *testing.T) {
	s := singleTask()

	errs := s.Validate(map[string]any{"text": 42})

	require.Len(t, errs, 1)
	assert.Equal(t, "must be a string", errs[0].Message)
}

func TestValidate_AdditionalProperty(t *testing.T) {
	s := singleTask()

	errs := s.Validate(map[string]any{"text": "ok", "priority": "high"})

	require.Len(t, errs, 1)
	assert.Equal(t, "priority", errs[0].Field)
	assert.Equal(t, "additional property not allowed", errs[0].Message)
}

func TestValidate_TaskLists(t *testing.T) {
	s := taskLists()

	doc := map[string]any{
		"todo": []any{
			map[string]any{"_id": "65f0c0ffee0c0ffee0c0ffee", "text": "one"},
		},
		"done": []any{},
	}

	assert.Nil(t, s.Validate(doc))
}

func TestValidate_TaskLists_CollectsAllErrors(t *testing.T) {
	s := taskLists()

	doc := map[string]any{
		"todo": []any{
			map[string]any{"text": "no id"},
			"not an object",
		},
	}

	errs := s.Validate(doc)

	require.Len(t, errs, 3)
	assert.Equal(t, "todo[0]._id", errs[0].Field)
	assert.Equal(t, "todo[1]", errs[1].Field)
	assert.Equal(t, "must be an object", errs[1].Message)
	assert.Equal(t, "done", errs[2].Field)
}

func TestValidate_TaskLists_NotArray(t *testing.T) {
	s := taskLists()

	errs := s.Validate(map[string]any{"todo": "nope", "done": []any{}})

	require.Len(t, errs, 1)
	assert.Equal(t, "todo", errs[0].Field)
	assert.Equal(t, "must be an array", errs[0].Message)
}

func TestErrors_Message(t *testing.T) {
	errs := Errors{
		{Field: "text", Message: "required property missing"},
		{Field: "extra", Message: "additional property not allowed"},
	}

	assert.Equal(t, "text: required property missing; extra: additional property not allowed", errs.Error())
}
