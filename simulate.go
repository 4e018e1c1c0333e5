package localstore

// Simulate maps a real command onto its simulate-tagged counterpart, so the
// same protocol can run entirely against the in-memory store. The second
// return is false for messages with no simulated form: backend replies,
// startup, and the simulate variants themselves.
func Simulate(m Message) (Message, bool) {
	switch v := m.(type) {
	case Get:
		return SimulateGet{Label: v.Label, Key: v.Key}, true
	case Put:
		return SimulatePut{Key: v.Key, Value: v.Value}, true
	case ListKeys:
		return SimulateListKeys{Label: v.Label, Prefix: v.Prefix}, true
	case Clear:
		return SimulateClear{Prefix: v.Prefix}, true
	default:
		return nil, false
	}
}
