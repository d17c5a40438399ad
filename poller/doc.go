// Package poller drives the fixed-cadence fetch loop behind a live view.
//
// A Poller owns one ticker for its active lifetime. Each tick issues one
// fetch in its own goroutine, so a slow fetch never delays the next tick.
// Successful fetches are delivered to a Sink (normally a store.Store);
// failures are logged and leave the sink untouched, and the next tick is
// the retry.
//
// Stop releases the ticker, cancels in-flight fetches and closes the
// delivery gate. After Stop returns no completion reaches the sink.
package poller
