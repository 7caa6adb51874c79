package common

import (
	"fmt"
	"unicode/utf8"
)

type ValidationError struct {
	Errors map[string]string
	// fields keeps the order in which the failures were recorded.
	fields []string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

// Message returns the first recorded failure.
func (e ValidationError) Message() string {
	if len(e.fields) == 0 {
		return "invalid request"
	}
	return e.Errors[e.fields[0]]
}

type Validator struct {
	Errors map[string]string
	fields []string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
		v.fields = append(v.fields, field)
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckStringLength counts characters, not bytes.
func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors, fields: v.fields}
}
