package localstore_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	store "github.com/funnel-project/localstore"
	"github.com/funnel-project/localstore/funnel"
)

// appState is a host application's aggregate state hosting one protocol.
type appState struct {
	storage store.State
	seen    []store.Response
}

func storageLens() store.Lens[appState] {
	return store.Lens[appState]{
		Get: func(a appState) store.State { return a.storage },
		Put: func(a appState, s store.State) appState {
			a.storage = s
			return a
		},
	}
}

func recordResponses(a appState, resp store.Response) (appState, []funnel.Envelope, error) {
	if resp != nil {
		a.seen = append(a.seen, resp)
	}
	return a, nil, nil
}

func newTestRouter(t *testing.T) *funnel.Router[appState] {
	t.Helper()
	r := funnel.NewRouter[appState]()
	if err := r.Register(store.ModuleName, store.Route(storageLens(), recordResponses)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return r
}

func TestRouteDispatch(t *testing.T) {
	r := newTestRouter(t)
	app := appState{storage: store.NewState("app")}

	// Startup flips the loaded flag and yields nothing.
	app, out, err := r.Dispatch(store.Encode(store.Startup{}), app)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no outgoing envelopes, got %v", out)
	}
	if !app.storage.Loaded {
		t.Fatal("expected storage state to be loaded")
	}

	// A got reply surfaces a stripped GetResponse through the handler.
	app, _, err = r.Dispatch(store.Encode(store.Got{
		Label: store.Label("l"),
		Key:   "app.foo",
		Value: store.Value(`"bar"`),
	}), app)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	want := store.GetResponse{Label: store.Label("l"), Key: "foo", Value: store.Value(`"bar"`)}
	if len(app.seen) != 1 || !reflect.DeepEqual(app.seen[0], want) {
		t.Fatalf("expected %#v, got %#v", want, app.seen)
	}
}

func TestRouteDecodeFailure(t *testing.T) {
	r := newTestRouter(t)
	app := appState{storage: store.NewState("app")}

	env := funnel.Envelope{Module: store.ModuleName, Tag: "get", Args: json.RawMessage(`42`)}
	next, _, err := r.Dispatch(env, app)
	if !errors.Is(err, store.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if next.storage.Loaded != app.storage.Loaded || len(next.seen) != 0 {
		t.Fatal("expected aggregate state untouched by a decode failure")
	}
}

func TestDispatchIsolation(t *testing.T) {
	r := newTestRouter(t)
	app := appState{storage: store.NewState("app")}

	env := funnel.Envelope{Module: "Clipboard", Tag: "startup", Args: json.RawMessage(`null`)}
	next, out, err := r.Dispatch(env, app)
	if !errors.Is(err, funnel.ErrUnknownModule) {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no outgoing envelopes, got %v", out)
	}
	if next.storage.Loaded {
		t.Fatal("expected registered protocol state untouched")
	}
}

func TestRouteWithoutResponder(t *testing.T) {
	r := funnel.NewRouter[appState]()
	if err := r.Register(store.ModuleName, store.Route(storageLens(), nil)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	app := appState{storage: store.NewState("app")}
	app, out, err := r.Dispatch(store.Encode(store.Startup{}), app)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no outgoing envelopes, got %v", out)
	}
	if !app.storage.Loaded {
		t.Fatal("expected storage state to be loaded")
	}
}

func TestRouteResponderError(t *testing.T) {
	boom := errors.New("boom")
	r := funnel.NewRouter[appState]()
	err := r.Register(store.ModuleName, store.Route(storageLens(),
		func(a appState, resp store.Response) (appState, []funnel.Envelope, error) {
			return a, nil, boom
		}))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	app := appState{storage: store.NewState("app")}
	_, _, err = r.Dispatch(store.Encode(store.Startup{}), app)
	if !errors.Is(err, boom) {
		t.Fatalf("expected responder error to propagate, got %v", err)
	}
}
