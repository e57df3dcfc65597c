package dto

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Entity  string
	Field   string
	Problem string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("The %s of %s %s.", e.Field, e.Entity, e.Problem)
}

const (
	problemMissing = "is missing"
	problemInvalid = "is invalid"
)

// Field is a named request value checked for presence.
type Field struct {
	Name  string
	Empty bool
}

func Text(name, v string) Field {
	return Field{Name: name, Empty: strings.TrimSpace(v) == ""}
}

func TextPtr(name string, v *string) Field {
	return Field{Name: name, Empty: v == nil || strings.TrimSpace(*v) == ""}
}

func ID(name string, v uint) Field {
	return Field{Name: name, Empty: v == 0}
}

func IDPtr(name string, v *uint) Field {
	return Field{Name: name, Empty: v == nil || *v == 0}
}

// Required reports every empty field in declaration order.
func Required(entity string, fields ...Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		if f.Empty {
			errs = append(errs, FieldError{Entity: entity, Field: f.Name, Problem: problemMissing})
		}
	}
	return errs
}

// MaxLen rejects a value longer than max characters. A nil value passes.
func MaxLen(entity, name string, v *string, max int) []FieldError {
	if v == nil || utf8.RuneCountInString(*v) <= max {
		return nil
	}
	return []FieldError{{Entity: entity, Field: name, Problem: fmt.Sprintf("must be at most %d characters", max)}}
}

func invalid(entity, name string) FieldError {
	return FieldError{Entity: entity, Field: name, Problem: problemInvalid}
}
