package common

import (
	"errors"

	"github.com/lib/pq"
)

// UniqueViolation reports whether err is a postgres unique constraint error on name.
func UniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

// ForeignKeyViolation reports whether err is a postgres foreign key error on name.
func ForeignKeyViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}

	return false
}
