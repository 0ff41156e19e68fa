// Package event provides a small in-process publish/subscribe bus used
// for request lifecycle notifications and liveness signals.
//
// Topics are hierarchical dot-separated strings ("assist.request.applied").
// Subscriptions may use an exact topic or a trailing "*" wildcard
// ("assist.request.*"). Dispatch is synchronous within Publish: handlers
// run on the publishing goroutine, in subscription order, and a panicking
// handler is recovered so it cannot take the engine down with it.
package event
