package errors

import "fmt"

// Exit codes reported for errors without a registered code.
const (
	SuccessCode  uint32 = 0
	internalCode uint32 = 1

	internalLog = "internal error"
)

// Report returns the exit code and the message of an error as it can be
// shown to a user. Errors that were not registered, and panics, are reported
// with code 1 and a generic message, unless debug is set. In debug mode the
// message carries the full stack trace.
func Report(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}
	code := Code(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode || ErrPanic.Is(err):
		return internalCode, internalLog
	default:
		return code, err.Error()
	}
}

// Code returns the registered code of the first error in the wrapping chain
// that has one, or 1 if there is none.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalCode
}

type coder interface {
	Code() uint32
}
