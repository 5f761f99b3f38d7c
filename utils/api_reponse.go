package utils

import "time"

type SuccessResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     APIError  `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details []ValidationError `json:"details,omitempty"`
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	}
}

// CreateValidationErrorResponse carries per-field issues so forms can render
// inline errors without re-parsing the message string.
func CreateValidationErrorResponse(message string, issues []ValidationError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Details: issues,
		},
		Timestamp: time.Now(),
	}
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func CreateSuccessResponseWithMessage(data any, message string) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}
