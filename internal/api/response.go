package api

// The backend wraps every payload in the same envelope; the client never
// surfaces transport or HTTP failures as Go errors, it folds them into
// the envelope so callers handle exactly one failure shape.

// FieldError is a per-field validation failure, passed through untouched
// for form-level display.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Response is the normalized outcome of one API call.
type Response[T any] struct {
	Success bool         `json:"success"`
	Data    *T           `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Message shown when the transport itself fails before any HTTP status
// exists.
const errNetwork = "Network error occurred"

func fail[T any](msg string) Response[T] {
	return Response[T]{Success: false, Error: msg}
}
