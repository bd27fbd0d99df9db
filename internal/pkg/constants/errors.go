package constants

import "net/http"

// CodedError несёт HTTP код, который отдаёт httpErrorHandler.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

// Is сравнивает по коду, чтобы ErrDBNotFound и ErrNotFound матчились друг на друга.
func (e *CodedError) Is(target error) bool {
	t, ok := target.(*CodedError)
	if !ok {
		return false
	}
	return e.code == t.code && (e.msg == t.msg || e.code == http.StatusNotFound)
}

var (
	ErrNotFound     = NewCodedError("not found", http.StatusNotFound)
	ErrDBNotFound   = NewCodedError("not found in db", http.StatusNotFound)
	ErrUnauthorized = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrBadRequest   = NewCodedError("bad request", http.StatusBadRequest)
)
