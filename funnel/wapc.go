package funnel

import (
	"fmt"

	wapc "github.com/wapc/wapc-guest-tinygo"
)

// DefaultBinding is the waPC binding used when none is configured.
const DefaultBinding = "storage"

// HostCallFunc matches the waPC host call signature.
type HostCallFunc func(binding, namespace, operation string, payload []byte) ([]byte, error)

// HostSenderConfig controls how a HostSender reaches the host runtime.
type HostSenderConfig struct {
	// Binding selects the host binding to call. Defaults to DefaultBinding.
	Binding string

	// HostCall overrides the waPC host function used to deliver envelopes.
	HostCall HostCallFunc
}

// HostSender ships envelopes to a waPC host. The module rides in the call
// namespace and the tag in the operation, so the host can route without
// parsing the payload. A non-empty reply payload is parsed as one envelope.
type HostSender struct {
	binding  string
	hostCall HostCallFunc
}

// NewHostSender creates a HostSender, falling back to wapc.HostCall and
// DefaultBinding for zero-value config fields.
func NewHostSender(cfg HostSenderConfig) (*HostSender, error) {
	binding := cfg.Binding
	if binding == "" {
		binding = DefaultBinding
	}

	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostSender{binding: binding, hostCall: hostCall}, nil
}

// Handle implements Backend over the configured host call.
func (s *HostSender) Handle(env Envelope) ([]Envelope, error) {
	resp, err := s.hostCall(s.binding, env.Module, env.Tag, env.Args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostCall, err)
	}
	if len(resp) == 0 {
		return nil, nil
	}

	reply, err := ParseEnvelope(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostResponseInvalid, err)
	}
	return []Envelope{reply}, nil
}
