package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input. It is
	// always returned before any remote call is attempted.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ReadError wraps a failed query against the data source. Read errors
// are captured into snapshots rather than rethrown to callers.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("read %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failed mutation. The underlying driver message is
// carried unchanged so imperative callers can react to it.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("write %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SubscriptionError wraps a change-event stream that could not be
// established.
type SubscriptionError struct {
	Table string
	Err   error
}

func (e *SubscriptionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("subscribe %s: %v", e.Table, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }

// FunctionError wraps an error payload or transport failure from a
// server-side function invocation.
type FunctionError struct {
	Name    string
	Message string
	Err     error
}

func (e *FunctionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("function %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("function %s: %v", e.Name, e.Err)
}

func (e *FunctionError) Unwrap() error { return e.Err }

func Read(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ReadError{Op: op, Err: err}
}

func Write(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Op: op, Err: err}
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}
