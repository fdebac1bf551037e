package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when a tool with the derived name already exists.
	ErrDuplicateName = errors.New("duplicate tool name")
	// ErrUnsupportedSignature is returned when a function's declared signature
	// cannot be mapped to a tool input schema.
	ErrUnsupportedSignature = errors.New("unsupported signature")
	// ErrFrozen is returned when registering after the registry was frozen.
	ErrFrozen = errors.New("tool registry is frozen")
	// ErrUnknownTool is returned by Call for a name that was never registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// RegistrationError describes why one function could not become a tool.
type RegistrationError struct {
	Tool string
	Kind error
	Err  error
}

func (e *RegistrationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("register tool %q: %v", e.Tool, e.Kind)
	}
	return fmt.Sprintf("register tool %q: %v: %v", e.Tool, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *RegistrationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unsupported(tool, format string, args ...any) error {
	return &RegistrationError{Tool: tool, Kind: ErrUnsupportedSignature, Err: fmt.Errorf(format, args...)}
}
