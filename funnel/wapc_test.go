package funnel_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funnel-project/localstore/funnel"
)

func TestHostSender(t *testing.T) {
	t.Run("Maps Envelope To Host Call", func(t *testing.T) {
		var gotBinding, gotNamespace, gotOperation string
		var gotPayload []byte

		sender, err := funnel.NewHostSender(funnel.HostSenderConfig{
			Binding: "browser",
			HostCall: func(binding, namespace, operation string, payload []byte) ([]byte, error) {
				gotBinding, gotNamespace, gotOperation, gotPayload = binding, namespace, operation, payload
				return nil, nil
			},
		})
		require.NoError(t, err)

		env := funnel.Envelope{
			Module: "LocalStorage",
			Tag:    "put",
			Args:   json.RawMessage(`{"key":"app.k","value":1}`),
		}
		replies, err := sender.Handle(env)
		require.NoError(t, err)
		assert.Empty(t, replies)

		assert.Equal(t, "browser", gotBinding)
		assert.Equal(t, "LocalStorage", gotNamespace)
		assert.Equal(t, "put", gotOperation)
		assert.JSONEq(t, `{"key":"app.k","value":1}`, string(gotPayload))
	})

	t.Run("Default Binding", func(t *testing.T) {
		var gotBinding string
		sender, err := funnel.NewHostSender(funnel.HostSenderConfig{
			HostCall: func(binding, namespace, operation string, payload []byte) ([]byte, error) {
				gotBinding = binding
				return nil, nil
			},
		})
		require.NoError(t, err)

		_, err = sender.Handle(funnel.Envelope{Module: "M", Tag: "t"})
		require.NoError(t, err)
		assert.Equal(t, funnel.DefaultBinding, gotBinding)
	})

	t.Run("Synchronous Reply", func(t *testing.T) {
		sender, err := funnel.NewHostSender(funnel.HostSenderConfig{
			HostCall: func(binding, namespace, operation string, payload []byte) ([]byte, error) {
				return []byte(`{"module":"LocalStorage","tag":"got","args":{"label":null,"key":"app.k","value":"v"}}`), nil
			},
		})
		require.NoError(t, err)

		replies, err := sender.Handle(funnel.Envelope{Module: "LocalStorage", Tag: "get"})
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.Equal(t, "got", replies[0].Tag)
	})

	t.Run("Host Failure", func(t *testing.T) {
		sender, err := funnel.NewHostSender(funnel.HostSenderConfig{
			HostCall: func(binding, namespace, operation string, payload []byte) ([]byte, error) {
				return nil, errors.New("host down")
			},
		})
		require.NoError(t, err)

		_, err = sender.Handle(funnel.Envelope{Module: "M", Tag: "t"})
		require.ErrorIs(t, err, funnel.ErrHostCall)
	})

	t.Run("Garbage Reply", func(t *testing.T) {
		sender, err := funnel.NewHostSender(funnel.HostSenderConfig{
			HostCall: func(binding, namespace, operation string, payload []byte) ([]byte, error) {
				return []byte("garbage"), nil
			},
		})
		require.NoError(t, err)

		_, err = sender.Handle(funnel.Envelope{Module: "M", Tag: "t"})
		require.ErrorIs(t, err, funnel.ErrHostResponseInvalid)
	})
}
