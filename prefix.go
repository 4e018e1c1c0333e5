package localstore

// Separator joins a namespace prefix to a key on the wire.
const Separator = "."

// AddPrefix namespaces key under prefix. An empty prefix leaves the key
// unchanged.
func AddPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// StripPrefix undoes AddPrefix for keys produced with the same prefix: the
// first len(prefix)+1 characters are dropped. It is positional rather than
// content-aware, so it must only be applied to keys that came out of
// AddPrefix with the same prefix; shorter keys are returned unchanged.
func StripPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if len(key) < len(prefix)+1 {
		return key
	}
	return key[len(prefix)+1:]
}
