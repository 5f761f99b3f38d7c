package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"farm_admin", "farm_admin"},
		{"  farm_admin  ", "farm_admin"},
		{"farm\u200badmin", "farmadmin"},
		{"farm\ufeffadmin", "farmadmin"},
		{"ผู้ดูแลfarm", "farm"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeUsername(tc.in), "input %q", tc.in)
	}
}

func TestValidateUsername_Bounds(t *testing.T) {
	ok, _ := ValidateUsername("ab")
	assert.False(t, ok, "2 chars is too short")

	ok, _ = ValidateUsername("abc")
	assert.True(t, ok)

	ok, _ = ValidateUsername("user name")
	assert.False(t, ok, "spaces are not allowed")
}

func TestSanitizeEmail(t *testing.T) {
	assert.Nil(t, SanitizeEmail(nil))

	blank := "   "
	assert.Nil(t, SanitizeEmail(&blank), "whitespace-only maps to nil")

	padded := " farmer@example.com "
	got := SanitizeEmail(&padded)
	if assert.NotNil(t, got) {
		assert.Equal(t, "farmer@example.com", *got)
	}
}

func TestValidateEmail(t *testing.T) {
	ok, _ := ValidateEmail("farmer@example.com")
	assert.True(t, ok)

	ok, _ = ValidateEmail("not-an-email")
	assert.False(t, ok)
}
