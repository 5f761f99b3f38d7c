package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func ValidateEmail(email string) (bool, error) {
	if !emailRegex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

// SanitizeUsername strips zero-width characters and any non-ASCII rune, then
// trims surrounding whitespace. Pasted usernames from LINE chats routinely
// carry U+200B and friends.
func SanitizeUsername(username string) string {
	var b strings.Builder
	for _, r := range username {
		if r > unicode.MaxASCII {
			continue
		}
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// ValidateUsername checks a sanitized username against the account rules:
// 3-50 characters from [a-zA-Z0-9_-].
func ValidateUsername(username string) (bool, error) {
	if len(username) < 3 || len(username) > 50 {
		return false, fmt.Errorf("username must be 3-50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return false, fmt.Errorf("username contains invalid characters")
	}
	return true, nil
}

// SanitizeEmail trims the input and maps blank to nil so "" is never stored
// as an address. Format is only checked for non-nil results.
func SanitizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func GetQueryParamAsInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	paramValue := c.Query(paramName)
	if paramValue == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	if intValue <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}
