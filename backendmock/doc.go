/*
Package backendmock provides a configurable fake funnel.Backend for testing
protocol clients without a real storage channel.

The mock validates that received envelopes carry the expected module and
tag, optionally validates their payload, and answers with canned reply
envelopes or injected failures. Every envelope received is recorded in
Calls for assertions.

Basic usage:

	m, _ := backendmock.New(backendmock.Config{
		ExpectedModule: localstore.ModuleName,
		ExpectedTag:    "get",
		Replies: func() []funnel.Envelope {
			return []funnel.Envelope{localstore.Encode(localstore.Got{...})}
		},
	})
	client, _ := localstore.NewClient(localstore.ClientConfig{Backend: m})
*/
package backendmock
