package backendmock

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/funnel-project/localstore/funnel"
)

var (
	// ErrUnexpectedModule is returned when the module is not as expected.
	ErrUnexpectedModule = errors.New("unexpected module")

	// ErrUnexpectedTag is returned when the tag is not as expected.
	ErrUnexpectedTag = errors.New("unexpected tag")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")
)

// Mock simulates a storage backend with validation and configurable replies.
type Mock struct {
	// ExpectedModule defines the module expected on received envelopes.
	// Empty skips the check.
	ExpectedModule string

	// ExpectedTag defines the tag expected on received envelopes.
	// Empty skips the check.
	ExpectedTag string

	// Error is the error to return if the mock is configured to fail.
	Error error

	// PayloadValidator validates the args of each received envelope.
	PayloadValidator func(json.RawMessage) error

	// Replies defines the reply envelopes to return for each call.
	Replies func() []funnel.Envelope

	// Fail indicates whether the mock should return an error.
	Fail bool

	// Calls records every envelope received, in order.
	Calls []funnel.Envelope
}

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// ExpectedModule defines the module expected on received envelopes.
	ExpectedModule string

	// ExpectedTag defines the tag expected on received envelopes.
	ExpectedTag string

	// Error is the error to return if the mock is configured to fail.
	Error error

	// PayloadValidator validates the args of each received envelope.
	PayloadValidator func(json.RawMessage) error

	// Replies defines the reply envelopes to return for each call.
	Replies func() []funnel.Envelope

	// Fail indicates whether the mock should return an error.
	Fail bool
}

// New creates a new instance of the Mock based on the provided Config.
func New(config Config) (*Mock, error) {
	return &Mock{
		ExpectedModule:   config.ExpectedModule,
		ExpectedTag:      config.ExpectedTag,
		Error:            config.Error,
		PayloadValidator: config.PayloadValidator,
		Replies:          config.Replies,
		Fail:             config.Fail,
	}, nil
}

// Handle implements funnel.Backend, validating the envelope and returning
// the configured replies or error.
func (m *Mock) Handle(env funnel.Envelope) ([]funnel.Envelope, error) {
	m.Calls = append(m.Calls, env)

	// Return user-defined error if Fail is set
	if m.Fail && m.Error != nil {
		return nil, m.Error
	}

	// Return default error if Fail is set but no custom error is provided
	if m.Fail {
		return nil, ErrOperationFailed
	}

	// Validate module
	if m.ExpectedModule != "" && m.ExpectedModule != env.Module {
		return nil, fmt.Errorf(
			"%w: expected module %s, got %s",
			ErrUnexpectedModule,
			m.ExpectedModule,
			env.Module,
		)
	}

	// Validate tag
	if m.ExpectedTag != "" && m.ExpectedTag != env.Tag {
		return nil, fmt.Errorf("%w: expected tag %s, got %s", ErrUnexpectedTag, m.ExpectedTag, env.Tag)
	}

	// Validate payload using user-defined validator, if provided
	if m.PayloadValidator != nil {
		if err := m.PayloadValidator(env.Args); err != nil {
			return nil, err
		}
	}

	// Return user-defined replies if provided
	if m.Replies != nil {
		return m.Replies(), nil
	}

	// Default to no replies
	return nil, nil
}
