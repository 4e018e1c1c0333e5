package funnel

import (
	"encoding/json"
	"fmt"
)

// Envelope is the generic wire format exchanged with backends. Module names
// the protocol the envelope belongs to, Tag names the message variant, and
// Args carries the tag-specific JSON payload.
type Envelope struct {
	Module string          `json:"module"`
	Tag    string          `json:"tag"`
	Args   json.RawMessage `json:"args"`
}

// ParseEnvelope decodes raw JSON bytes into an Envelope. Both the module and
// tag fields must be present and non-empty.
func ParseEnvelope(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if env.Module == "" {
		return Envelope{}, fmt.Errorf("%w: missing module", ErrBadEnvelope)
	}
	if env.Tag == "" {
		return Envelope{}, fmt.Errorf("%w: missing tag", ErrBadEnvelope)
	}
	return env, nil
}

// MarshalBinary renders the envelope as JSON bytes for the wire.
func (e Envelope) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

// Backend consumes outbound envelopes on behalf of a real storage channel.
// Handle may return zero or more reply envelopes synchronously; backends
// that answer on a later turn instead feed their replies back through the
// application's inbound path.
type Backend interface {
	Handle(env Envelope) ([]Envelope, error)
}
