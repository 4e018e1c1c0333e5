package funnel

import "errors"

var (
	// ErrBadEnvelope reports bytes that do not parse as a wire envelope.
	ErrBadEnvelope = errors.New("malformed envelope")

	// ErrUnknownModule means an envelope named a module no handler is
	// registered for.
	ErrUnknownModule = errors.New("unknown module")

	// ErrEmptyModule is returned when registering with an empty module name.
	ErrEmptyModule = errors.New("module name is empty")

	// ErrAlreadyRegistered is returned when a module is registered twice.
	ErrAlreadyRegistered = errors.New("module already registered")

	// ErrHandlerNil is returned when the provided handler is nil.
	ErrHandlerNil = errors.New("handler cannot be nil")

	// ErrHostCall indicates that a waPC host invocation failed.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid signals that the host returned a payload that
	// does not parse as an envelope.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")
)
