package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/funnel-project/localstore/funnel"
)

// Arg shims pin the wire shapes of each tag. Required string fields are
// pointer-typed so an absent field fails decoding instead of defaulting;
// label stays optional and value absence travels as JSON null, never as
// field omission.
type keyedArgs struct {
	Label *string `json:"label"`
	Key   *string `json:"key"`
}

type gotArgs struct {
	Label *string         `json:"label"`
	Key   *string         `json:"key"`
	Value json.RawMessage `json:"value"`
}

type putArgs struct {
	Key   *string         `json:"key"`
	Value json.RawMessage `json:"value"`
}

type prefixedArgs struct {
	Label  *string `json:"label"`
	Prefix *string `json:"prefix"`
}

type keysArgs struct {
	Label  *string   `json:"label"`
	Prefix *string   `json:"prefix"`
	Keys   *[]string `json:"keys"`
}

// normalizeValue folds the JSON literal null into the nil Value so that
// absence has a single canonical representation on both sides of the codec.
func normalizeValue(v Value) Value {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	return v
}

// Encode converts a typed message into its generic envelope. It is total:
// every constructible Message has a wire form.
func Encode(m Message) funnel.Envelope {
	var args any
	switch v := m.(type) {
	case Startup:
		args = nil
	case Get:
		args = keyedArgs{Label: v.Label, Key: &v.Key}
	case Got:
		args = gotArgs{Label: v.Label, Key: &v.Key, Value: normalizeValue(v.Value)}
	case Put:
		args = putArgs{Key: &v.Key, Value: normalizeValue(v.Value)}
	case ListKeys:
		args = prefixedArgs{Label: v.Label, Prefix: &v.Prefix}
	case Keys:
		keys := v.Keys
		if keys == nil {
			keys = []string{}
		}
		args = keysArgs{Label: v.Label, Prefix: &v.Prefix, Keys: &keys}
	case Clear:
		args = v.Prefix
	case SimulateGet:
		args = keyedArgs{Label: v.Label, Key: &v.Key}
	case SimulatePut:
		args = putArgs{Key: &v.Key, Value: normalizeValue(v.Value)}
	case SimulateListKeys:
		args = prefixedArgs{Label: v.Label, Prefix: &v.Prefix}
	case SimulateClear:
		args = v.Prefix
	}

	// The shapes above always marshal; the one exception is a Value holding
	// bytes that are not valid JSON, which violates the Value contract.
	raw, err := json.Marshal(args)
	if err != nil {
		panic(fmt.Sprintf("localstore: marshal %q args: %v", m.tag(), err))
	}
	return funnel.Envelope{Module: ModuleName, Tag: m.tag(), Args: raw}
}

// Decode converts a generic envelope back into a typed message. Unknown
// tags and payloads that do not match the tag's shape fail with an error
// wrapping ErrDecode; Decode never panics.
func Decode(env funnel.Envelope) (Message, error) {
	switch env.Tag {
	case tagStartup:
		// The startup payload carries no information and is ignored.
		return Startup{}, nil

	case tagGet, tagSimulateGet:
		var a keyedArgs
		if err := unmarshalArgs(env, &a); err != nil {
			return nil, err
		}
		if a.Key == nil {
			return nil, decodeErr(env.Tag, "missing key")
		}
		if env.Tag == tagSimulateGet {
			return SimulateGet{Label: a.Label, Key: *a.Key}, nil
		}
		return Get{Label: a.Label, Key: *a.Key}, nil

	case tagGot:
		var a gotArgs
		if err := unmarshalArgs(env, &a); err != nil {
			return nil, err
		}
		if a.Key == nil {
			return nil, decodeErr(env.Tag, "missing key")
		}
		return Got{Label: a.Label, Key: *a.Key, Value: normalizeValue(a.Value)}, nil

	case tagPut, tagSimulatePut:
		var a putArgs
		if err := unmarshalArgs(env, &a); err != nil {
			return nil, err
		}
		if a.Key == nil {
			return nil, decodeErr(env.Tag, "missing key")
		}
		if env.Tag == tagSimulatePut {
			return SimulatePut{Key: *a.Key, Value: normalizeValue(a.Value)}, nil
		}
		return Put{Key: *a.Key, Value: normalizeValue(a.Value)}, nil

	case tagListKeys, tagSimulateListKeys:
		var a prefixedArgs
		if err := unmarshalArgs(env, &a); err != nil {
			return nil, err
		}
		if a.Prefix == nil {
			return nil, decodeErr(env.Tag, "missing prefix")
		}
		if env.Tag == tagSimulateListKeys {
			return SimulateListKeys{Label: a.Label, Prefix: *a.Prefix}, nil
		}
		return ListKeys{Label: a.Label, Prefix: *a.Prefix}, nil

	case tagKeys:
		var a keysArgs
		if err := unmarshalArgs(env, &a); err != nil {
			return nil, err
		}
		if a.Prefix == nil {
			return nil, decodeErr(env.Tag, "missing prefix")
		}
		if a.Keys == nil {
			return nil, decodeErr(env.Tag, "missing keys")
		}
		return Keys{Label: a.Label, Prefix: *a.Prefix, Keys: *a.Keys}, nil

	case tagClear, tagSimulateClear:
		// Clear args are the bare prefix string, not wrapped in an object.
		var p *string
		if err := unmarshalArgs(env, &p); err != nil {
			return nil, err
		}
		if p == nil {
			return nil, decodeErr(env.Tag, "missing prefix")
		}
		if env.Tag == tagSimulateClear {
			return SimulateClear{Prefix: *p}, nil
		}
		return Clear{Prefix: *p}, nil

	default:
		return nil, fmt.Errorf("%w: unknown tag %q", ErrDecode, env.Tag)
	}
}

func unmarshalArgs(env funnel.Envelope, dst any) error {
	if err := json.Unmarshal(env.Args, dst); err != nil {
		return fmt.Errorf("%w: tag %q: %v", ErrDecode, env.Tag, err)
	}
	return nil
}

func decodeErr(tag, reason string) error {
	return fmt.Errorf("%w: tag %q: %s", ErrDecode, tag, reason)
}
