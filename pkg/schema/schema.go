// Package schema provides typed payload validation for the task routes.
// Schemas are explicit field lists (name, type, required) checked before
// any mutation is applied; a failed check returns every field error, not
// just the first one.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Type enumerates the value kinds a field may carry.
type Type int

const (
	String Type = iota
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field declares one property of an object schema. Elem describes the
// element schema for Array fields.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Elem     *Schema
}

// Schema is the rule book for one object payload.
type Schema struct {
	Fields               []Field
	AdditionalProperties bool
}

// FieldError pinpoints a single validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the full list of failures for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return strings.Join(parts, "; ")
}

// Validate checks doc against the schema and returns every field error
// found. A nil return means the payload is valid.
func (s *Schema) Validate(doc map[string]any) Errors {
	return s.validate("", doc)
}

func (s *Schema) validate(path string, doc map[string]any) Errors {
	var errs Errors

	for _, f := range s.Fields {
		value, present := doc[f.Name]
		name := joinPath(path, f.Name)

		if !present {
			if f.Required {
				errs = append(errs, FieldError{Field: name, Message: "required property missing"})
			}
			continue
		}
		errs = append(errs, checkType(name, f, value)...)
	}

	if !s.AdditionalProperties {
		known := make(map[string]struct{}, len(s.Fields))
		for _, f := range s.Fields {
			known[f.Name] = struct{}{}
		}
		var extras []string
		for key := range doc {
			if _, ok := known[key]; !ok {
				extras = append(extras, joinPath(path, key))
			}
		}
		sort.Strings(extras)
		for _, key := range extras {
			errs = append(errs, FieldError{Field: key, Message: "additional property not allowed"})
		}
	}

	return errs
}

func checkType(name string, f Field, value any) Errors {
	switch f.Type {
	case String:
		if _, ok := value.(string); !ok {
			return Errors{{Field: name, Message: "must be a string"}}
		}
	case Array:
		items, ok := value.([]any)
		if !ok {
			return Errors{{Field: name, Message: "must be an array"}}
		}
		if f.Elem == nil {
			return nil
		}
		var errs Errors
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("%s[%d]", name, i),
					Message: "must be an object",
				})
				continue
			}
			errs = append(errs, f.Elem.validate(fmt.Sprintf("%s[%d]", name, i), obj)...)
		}
		return errs
	case Object:
		obj, ok := value.(map[string]any)
		if !ok {
			return Errors{{Field: name, Message: "must be an object"}}
		}
		if f.Elem != nil {
			return f.Elem.validate(name, obj)
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
