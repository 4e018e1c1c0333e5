package localstore

import "github.com/funnel-project/localstore/funnel"

// Lens reads and writes one protocol instance's State inside the
// application's aggregate state A. The pair is supplied at registration so
// the funnel router can fold a dispatch result back into shared state.
type Lens[A any] struct {
	Get func(A) State
	Put func(A, State) A
}

// ResponseHandler receives the typed response produced by a dispatched
// envelope (nil when the message produced none) together with the updated
// aggregate state, and returns the next aggregate state plus any envelopes
// to send.
type ResponseHandler[A any] func(app A, resp Response) (A, []funnel.Envelope, error)

// Route bundles the codec, the state accessor pair, Process and Commander
// into a handler the funnel router can dispatch to. Decode failures
// propagate as errors wrapping ErrDecode and leave the aggregate state
// untouched.
func Route[A any](lens Lens[A], respond ResponseHandler[A]) funnel.Handler[A] {
	return func(env funnel.Envelope, app A) (A, []funnel.Envelope, error) {
		msg, err := Decode(env)
		if err != nil {
			return app, nil, err
		}

		next, resp := Process(msg, lens.Get(app))
		out := Commander(resp, next)
		app = lens.Put(app, next)

		if respond == nil {
			return app, out, nil
		}
		app, more, err := respond(app, resp)
		if err != nil {
			return app, nil, err
		}
		return app, append(out, more...), nil
	}
}
