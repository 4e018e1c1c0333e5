/*
Package boltstore implements the storage-adapter side of the funnel protocol
over a local bbolt database, so applications can run the same protocol
outside a browser against real persistent storage.

The store implements funnel.Backend: it answers get envelopes with got,
listkeys with keys, persists or deletes on put, and removes every matching
key on clear (an empty prefix clears the whole bucket). As the adapter
contract requires, it emits exactly one startup envelope after Open
completes, through the optional Emit callback.

Keys arrive fully namespaced; the adapter stores and matches them verbatim
and never interprets the namespace separator.
*/
package boltstore
