package localstore

import "encoding/json"

// ModuleName identifies this protocol in envelope routing.
const ModuleName = "LocalStorage"

// Value is a raw JSON payload. A nil Value means absence: it travels as
// JSON null on the wire, signals a missing key on reads, and requests
// deletion on writes.
type Value = json.RawMessage

// Label returns a correlation label for a request. Labels are opaque to the
// protocol and echoed back unchanged on the matching response.
func Label(s string) *string { return &s }

// Wire tags, one per message variant.
const (
	tagStartup          = "startup"
	tagGet              = "get"
	tagGot              = "got"
	tagPut              = "put"
	tagListKeys         = "listkeys"
	tagKeys             = "keys"
	tagClear            = "clear"
	tagSimulateGet      = "simulateget"
	tagSimulatePut      = "simulateput"
	tagSimulateListKeys = "simulatelistkeys"
	tagSimulateClear    = "simulateclear"
)

// Message is the closed set of protocol messages. Get, Put, ListKeys and
// Clear are outbound commands; Got, Keys and Startup arrive from the
// backend; the Simulate variants drive the in-memory store instead of a
// real backend.
type Message interface {
	tag() string
}

// Startup is sent once by the backend after it finishes initializing. It is
// the only message ever emitted without having been requested.
type Startup struct{}

// Get asks the backend for the value stored under a fully-namespaced key.
type Get struct {
	Label *string
	Key   string
}

// Got is the backend's reply to a Get.
type Got struct {
	Label *string
	Key   string
	Value Value
}

// Put stores a value under a fully-namespaced key, or deletes the key when
// Value is nil.
type Put struct {
	Key   string
	Value Value
}

// ListKeys asks the backend for every key whose fully-namespaced form
// starts with Prefix.
type ListKeys struct {
	Label  *string
	Prefix string
}

// Keys is the backend's reply to a ListKeys.
type Keys struct {
	Label  *string
	Prefix string
	Keys   []string
}

// Clear deletes every key whose fully-namespaced form starts with Prefix.
// An empty prefix clears the whole storage area.
type Clear struct {
	Prefix string
}

// SimulateGet is Get against the in-memory simulation store.
type SimulateGet struct {
	Label *string
	Key   string
}

// SimulatePut is Put against the in-memory simulation store.
type SimulatePut struct {
	Key   string
	Value Value
}

// SimulateListKeys is ListKeys against the in-memory simulation store.
type SimulateListKeys struct {
	Label  *string
	Prefix string
}

// SimulateClear is Clear against the in-memory simulation store.
type SimulateClear struct {
	Prefix string
}

func (Startup) tag() string          { return tagStartup }
func (Get) tag() string              { return tagGet }
func (Got) tag() string              { return tagGot }
func (Put) tag() string              { return tagPut }
func (ListKeys) tag() string         { return tagListKeys }
func (Keys) tag() string             { return tagKeys }
func (Clear) tag() string            { return tagClear }
func (SimulateGet) tag() string      { return tagSimulateGet }
func (SimulatePut) tag() string      { return tagSimulatePut }
func (SimulateListKeys) tag() string { return tagSimulateListKeys }
func (SimulateClear) tag() string    { return tagSimulateClear }
