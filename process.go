package localstore

import (
	"sort"
	"strings"

	"github.com/funnel-project/localstore/funnel"
)

// Process folds one inbound message into the state and returns the new
// state plus the response owed to the application, if any. It is pure:
// the input State is never mutated, and no message can fail half-way.
func Process(m Message, s State) (State, Response) {
	switch v := m.(type) {
	case Startup:
		s.Loaded = true
		return s, nil

	case Got:
		return s, GetResponse{
			Label: v.Label,
			Key:   StripPrefix(s.Prefix, v.Key),
			Value: v.Value,
		}

	case Keys:
		stripped := make([]string, len(v.Keys))
		for i, k := range v.Keys {
			stripped[i] = StripPrefix(s.Prefix, k)
		}
		return s, ListKeysResponse{
			Label:  v.Label,
			Prefix: StripPrefix(s.Prefix, v.Prefix),
			Keys:   stripped,
		}

	case SimulateGet:
		value := s.sim[v.Key]
		return s, GetResponse{
			Label: v.Label,
			Key:   StripPrefix(s.Prefix, v.Key),
			Value: value,
		}

	case SimulatePut:
		if v.Value == nil {
			return s.deleteSim(v.Key), nil
		}
		return s.putSim(v.Key, v.Value), nil

	case SimulateListKeys:
		// Plain string-prefix matching: prefix "a" also matches "ab.c".
		keys := []string{}
		for k := range s.sim {
			if strings.HasPrefix(k, v.Prefix) {
				keys = append(keys, StripPrefix(s.Prefix, k))
			}
		}
		sort.Strings(keys)
		return s, ListKeysResponse{
			Label:  v.Label,
			Prefix: StripPrefix(s.Prefix, v.Prefix),
			Keys:   keys,
		}

	case SimulateClear:
		var matched []string
		for k := range s.sim {
			if strings.HasPrefix(k, v.Prefix) {
				matched = append(matched, k)
			}
		}
		if len(matched) == 0 {
			return s, nil
		}
		return s.deleteSim(matched...), nil

	default:
		// Request-shaped traffic arriving inbound (a Get where only a Got
		// is expected) is a protocol violation; it is dropped silently
		// rather than surfaced.
		return s, nil
	}
}

// Commander decides whether a response must push a further message out on
// its own. The storage protocol never does: all sends are driven by
// explicit application action. The hook exists because the funnel registry
// contract lets other protocols chain an outgoing message off a response.
func Commander(resp Response, s State) []funnel.Envelope {
	return nil
}
