package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstMessagePerField(t *testing.T) {
	v := NewValidator()
	v.Check(false, "email", "Enter Email")
	v.Check(false, "email", "Enter Valid Email")
	v.Check(true, "password", "never recorded")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"email": "Enter Email"}, v.Errors)
}

func TestValidationErrorMessageFollowsCheckOrder(t *testing.T) {
	v := NewValidator()
	v.Check(false, "title", "Title cannot be empty")
	v.Check(false, "des", "Description must be between 1 to 200 characters")
	v.Check(false, "tags", "Provide 1 to 10 tags for the blog")

	var verr ValidationError
	err := v.ValidationError()
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "Title cannot be empty", verr.Message())
	assert.Len(t, verr.Errors, 3)
}

func TestCheckStringLengthCountsRunes(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		input string
		min   int
		max   int
		want  bool
	}{
		{input: "", min: 1, max: 3, want: false},
		{input: "abc", min: 1, max: 3, want: true},
		{input: "abcd", min: 1, max: 3, want: false},
		{input: "héé", min: 3, max: 3, want: true},
		{input: "日本語", min: 1, max: 3, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, v.CheckStringLength(tc.input, tc.min, tc.max))
		})
	}
}

func TestEmptyValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid request", ValidationError{}.Message())
}
