package apperror

import (
	"fmt"

	"github.com/pkg/errors"
)

type Code string

const (
	CodeSchemaReset         Code = "schema_reset"
	CodePersistence         Code = "persistence"
	CodeUniquePoolExhausted Code = "unique_pool_exhausted"
	CodeInvalidReference    Code = "invalid_reference"
	CodeConfig              Code = "config"
	CodeInternal            Code = "internal"
)

var (
	ErrUniquePoolExhausted = errors.New("unique pool exhausted")
	ErrTransientReference  = errors.New("referenced entity has no identity")
	ErrSelfReference       = errors.New("employee cannot be its own chief")
	ErrCyclicReference     = errors.New("chief chain leads back to the employee")
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap tags err with code. A nil err yields nil.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     errors.WithStack(err),
	}
}

func Wrapf(code Code, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     errors.WithStack(err),
	}
}

// GetCode returns the code of the outermost *Error in err's chain,
// CodeInternal for foreign errors and "" for nil.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}
