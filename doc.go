/*
Package localstore implements a funnel protocol for the browser's key/value
persistent storage facility, letting a purely-functional application core
issue storage commands and receive asynchronous replies without touching the
imperative storage API.

The protocol is a closed set of messages (Get, Put, ListKeys, Clear, the
backend's Got/Keys/Startup replies, and Simulate-tagged counterparts of each
command) carried in generic funnel envelopes. Encode and Decode convert
between the two representations; Process folds inbound messages into an
immutable State; Simulate reroutes real commands against the in-memory
simulation store so the whole protocol runs without a backend.

Keys are namespaced with AddPrefix on the way out and StripPrefix on the way
back, so application code never sees namespaced keys. Client bundles all of
this into a boundary adapter: it runs commands through the simulation until
the backend's startup message arrives, then routes them to a real
funnel.Backend.
*/
package localstore
