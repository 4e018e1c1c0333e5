package localstore

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funnel-project/localstore/funnel"
)

// ClientConfig provides configuration options for creating a Client.
type ClientConfig struct {
	// Backend receives encoded envelopes once the protocol is loaded.
	Backend funnel.Backend

	// GenerateLabel mints correlation labels for requests issued without
	// one. Defaults to uuid.NewString.
	GenerateLabel func() string
}

// Client is the boundary adapter between application code and the storage
// channel. It namespaces keys on the way out using the State's prefix,
// loops commands through the simulation until the backend reports startup,
// and afterwards routes them to the backend, folding any synchronous reply
// envelopes back through Process.
type Client struct {
	backend  funnel.Backend
	newLabel func() string
}

// NewClient creates a Client for the given backend.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Backend == nil {
		return nil, ErrBackendNil
	}

	gen := cfg.GenerateLabel
	if gen == nil {
		gen = uuid.NewString
	}

	return &Client{backend: cfg.Backend, newLabel: gen}, nil
}

// Get requests the value stored under key. An empty label is replaced with
// a generated one so the caller can correlate the eventual GetResponse.
func (c *Client) Get(st State, label, key string) (State, []Response, error) {
	return c.send(st, Get{Label: c.label(label), Key: AddPrefix(st.Prefix, key)})
}

// Put stores value under key, or deletes key when value is nil.
func (c *Client) Put(st State, key string, value Value) (State, []Response, error) {
	return c.send(st, Put{Key: AddPrefix(st.Prefix, key), Value: value})
}

// ListKeys requests every key of this instance starting with keyPrefix.
// An empty keyPrefix lists the whole namespace.
func (c *Client) ListKeys(st State, label, keyPrefix string) (State, []Response, error) {
	return c.send(st, ListKeys{Label: c.label(label), Prefix: AddPrefix(st.Prefix, keyPrefix)})
}

// Clear deletes every key of this instance starting with keyPrefix.
func (c *Client) Clear(st State, keyPrefix string) (State, []Response, error) {
	return c.send(st, Clear{Prefix: AddPrefix(st.Prefix, keyPrefix)})
}

// Feed folds one inbound envelope (startup, got, keys) into the state.
// Backends that reply asynchronously deliver their envelopes here.
func (c *Client) Feed(st State, env funnel.Envelope) (State, Response, error) {
	if env.Module != ModuleName {
		return st, nil, fmt.Errorf("%w: %s", funnel.ErrUnknownModule, env.Module)
	}
	msg, err := Decode(env)
	if err != nil {
		return st, nil, err
	}
	next, resp := Process(msg, st)
	return next, resp, nil
}

func (c *Client) label(label string) *string {
	if label == "" {
		label = c.newLabel()
	}
	return &label
}

// send routes one outbound command: through the simulation while the
// backend has not reported startup, to the real backend afterwards.
func (c *Client) send(st State, m Message) (State, []Response, error) {
	if !st.Loaded {
		sim, ok := Simulate(m)
		if !ok {
			return st, nil, nil
		}
		next, resp := Process(sim, st)
		if resp == nil {
			return next, nil, nil
		}
		return next, []Response{resp}, nil
	}

	replies, err := c.backend.Handle(Encode(m))
	if err != nil {
		return st, nil, fmt.Errorf("backend: %w", err)
	}

	var responses []Response
	for _, env := range replies {
		var resp Response
		st, resp, err = c.Feed(st, env)
		if err != nil {
			return st, responses, err
		}
		if resp != nil {
			responses = append(responses, resp)
		}
	}
	return st, responses, nil
}
