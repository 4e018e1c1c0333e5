package localstore

import "sort"

// State is the per-instance protocol state. It has value semantics: Process
// returns a new State and never mutates its input, so callers can thread it
// through a functional update loop and keep old snapshots around.
type State struct {
	// Loaded flips to true once the backend's startup message arrives.
	Loaded bool

	// Prefix is the namespace applied to every key of this instance.
	Prefix string

	// sim is the in-memory store driven by the Simulate messages. It is
	// wholly owned by the State; mutations go through copy-on-write.
	sim map[string]Value
}

// NewState returns the initial state for one protocol instance.
func NewState(prefix string) State {
	return State{Prefix: prefix, sim: map[string]Value{}}
}

// SimValue reads the simulation store under a fully-namespaced key.
func (s State) SimValue(key string) (Value, bool) {
	v, ok := s.sim[key]
	return v, ok
}

// SimKeys returns the simulation store's fully-namespaced keys, sorted.
func (s State) SimKeys() []string {
	keys := make([]string, 0, len(s.sim))
	for k := range s.sim {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// putSim returns a State whose simulation store has key set to v.
func (s State) putSim(key string, v Value) State {
	next := cloneSim(s.sim)
	next[key] = v
	s.sim = next
	return s
}

// deleteSim returns a State whose simulation store lacks the given keys.
func (s State) deleteSim(keys ...string) State {
	next := cloneSim(s.sim)
	for _, k := range keys {
		delete(next, k)
	}
	s.sim = next
	return s
}

func cloneSim(m map[string]Value) map[string]Value {
	next := make(map[string]Value, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}
