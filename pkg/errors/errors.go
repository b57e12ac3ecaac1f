package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class. Tests and the CLI match on codes,
// never on messages.
type ErrorCode string

const (
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Loading and validating the project configuration
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrBrowserslist  ErrorCode = "BROWSERSLIST"

	ErrRuleInvalid ErrorCode = "RULE_INVALID"

	// Plugin lookup and hook execution
	ErrPluginNotFound ErrorCode = "PLUGIN_NOT_FOUND"
	ErrPluginSetup    ErrorCode = "PLUGIN_SETUP"
	ErrPhaseOrder     ErrorCode = "PHASE_ORDER"

	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// Exit statuses used by the bundlechain command
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// usageCodes are failures the user fixes by changing flags or config files
var usageCodes = map[ErrorCode]bool{
	ErrInvalidInput:   true,
	ErrConfigLoad:     true,
	ErrConfigParse:    true,
	ErrConfigInvalid:  true,
	ErrBrowserslist:   true,
	ErrPluginNotFound: true,
}

// IsUsage reports whether code describes a problem with the user's input
func (c ErrorCode) IsUsage() bool {
	return usageCodes[c]
}

// Error is a coded error. Details carry the values a caller needs to locate
// the problem (a plugin name, a config path, a build phase).
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// WithDetail records key on the error and returns it for chaining
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func build(code ErrorCode, message string, wrapped error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

func New(code ErrorCode, message string) *Error {
	return build(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns nil for a nil err so call sites can wrap unconditionally
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// InPlugin attributes a hook failure to its plugin. Coded errors keep their
// code, anything else becomes ErrPluginSetup. Cancellation passes through
// untouched so callers can still match context.Canceled directly.
func InPlugin(err error, plugin, hook string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	code := ErrPluginSetup
	if inner := GetErrorCode(err); inner != ErrUnknown {
		code = inner
	}
	return Wrapf(err, code, "plugin %s failed in %s", plugin, hook).
		WithDetail("plugin", plugin).
		WithDetail("hook", hook)
}

// IsErrorCode reports whether the outermost *Error in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the code of the outermost *Error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrUnknown
}

// GetErrorDetails merges the details of every *Error in err's chain. Outer
// errors win on key collisions. It returns nil when the chain holds no *Error.
func GetErrorDetails(err error) map[string]interface{} {
	var chain []*Error
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if coded, ok := cur.(*Error); ok {
			chain = append(chain, coded)
		}
	}
	if len(chain) == 0 {
		return nil
	}

	merged := make(map[string]interface{})
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Details {
			merged[k] = v
		}
	}
	return merged
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetErrorCode(err).IsUsage() {
		return ExitUsage
	}
	return ExitFailure
}
