package localstore

// Response is what Process yields to the application for one inbound
// message. A nil Response means the message produced nothing to report.
// Keys and prefixes in responses have the instance namespace stripped.
type Response interface {
	response()
}

// GetResponse answers a Get or SimulateGet. Value is nil when the key was
// absent.
type GetResponse struct {
	Label *string
	Key   string
	Value Value
}

// ListKeysResponse answers a ListKeys or SimulateListKeys.
type ListKeysResponse struct {
	Label  *string
	Prefix string
	Keys   []string
}

func (GetResponse) response()      {}
func (ListKeysResponse) response() {}
