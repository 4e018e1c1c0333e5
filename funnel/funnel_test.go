package funnel_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnel-project/localstore/funnel"
)

func TestParseEnvelope(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		env, err := funnel.ParseEnvelope([]byte(`{"module":"LocalStorage","tag":"get","args":{"label":null,"key":"k"}}`))
		require.NoError(t, err)
		assert.Equal(t, "LocalStorage", env.Module)
		assert.Equal(t, "get", env.Tag)
		assert.JSONEq(t, `{"label":null,"key":"k"}`, string(env.Args))
	})

	t.Run("Null Args", func(t *testing.T) {
		env, err := funnel.ParseEnvelope([]byte(`{"module":"LocalStorage","tag":"startup","args":null}`))
		require.NoError(t, err)
		assert.Equal(t, "startup", env.Tag)
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := funnel.ParseEnvelope([]byte(`nope`))
		require.ErrorIs(t, err, funnel.ErrBadEnvelope)
	})

	t.Run("Missing Module", func(t *testing.T) {
		_, err := funnel.ParseEnvelope([]byte(`{"tag":"get","args":null}`))
		require.ErrorIs(t, err, funnel.ErrBadEnvelope)
	})

	t.Run("Missing Tag", func(t *testing.T) {
		_, err := funnel.ParseEnvelope([]byte(`{"module":"LocalStorage","args":null}`))
		require.ErrorIs(t, err, funnel.ErrBadEnvelope)
	})
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := funnel.Envelope{
		Module: "LocalStorage",
		Tag:    "put",
		Args:   json.RawMessage(`{"key":"k","value":null}`),
	}

	b, err := env.MarshalBinary()
	require.NoError(t, err)

	parsed, err := funnel.ParseEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, env, parsed)
}
