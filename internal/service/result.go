package service

// ErrorCode enumerates expected authentication outcomes.
type ErrorCode string

const (
	ErrMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	ErrMissingIdentifier  ErrorCode = "MISSING_IDENTIFIER"
	ErrUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrInvalidPassword    ErrorCode = "INVALID_PASSWORD"
)

// OpError describes an expected business failure.
type OpError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Result is the outcome of an operation that can fail for business reasons.
// Data is meaningful only when Success is true, Error only when it is false.
type Result[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    T        `json:"data,omitempty"`
	Error   *OpError `json:"error,omitempty"`
}

// Succeed builds a successful result.
func Succeed[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failed result.
func Fail[T any](code ErrorCode, message string) Result[T] {
	return Result[T]{Error: &OpError{Code: code, Message: message}}
}
