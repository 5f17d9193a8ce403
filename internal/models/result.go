package models

// Result is the uniform envelope returned by every remote call.
//
// Data is nil for void operations and for failures.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

// Ok builds a successful [Result] around v.
func Ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: &v}
}

// Fail builds a failed [Result] with the given message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

// Value returns the payload, or the zero value when absent.
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}

// Empty is the payload type of void operations.
type Empty struct{}
