/*
Package funnel implements the generic envelope layer that lets a functional
application core exchange messages with imperative backends over a single
pair of channels.

Every message crossing the boundary is an Envelope carrying a module name, a
tag, and a JSON payload. A Router holds one Handler per registered module
and dispatches each inbound envelope to exactly one of them, threading the
application's aggregate state through the call.

For WebAssembly deployments, HostSender ships outbound envelopes to the host
runtime over waPC, mapping the module to the call namespace and the tag to
the operation. Tests can inject a custom host call to exercise failure paths
without a real host.
*/
package funnel
