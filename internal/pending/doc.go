// Package pending tracks the document regions of in-flight generation
// requests and keeps their coordinates valid while the document keeps
// changing underneath them.
//
// A pending edit is a registered intention to later overwrite a specific
// document region with backend-generated text. Between registration and
// the write, the host may mutate the document arbitrarily: the user
// keeps typing, other requests apply their results, other collaborators
// edit. The [Tracker] consumes the host's mutation feed and rebases every
// affected region through each content change, so the eventual write
// lands where the original target text now lives.
//
// # Rebase Semantics
//
// Rebasing one range through one change is a pure coordinate transform
// (see [Rebase]): changes entirely after the range leave it untouched,
// changes entirely above translate its lines, changes immediately before
// the start on the same line re-anchor the start column, and changes that
// overlap the range degrade to a best-effort line translation. Overlap
// means the target text itself was edited concurrently, so exact
// repositioning is undefined; the tracker keeps the edit alive at the
// approximate position rather than dropping it.
//
// Rebasing never fails and never discards a pending edit. The only hard
// error the package surfaces is registering a duplicate id.
//
// # Thread Safety
//
// All Tracker operations are safe for concurrent use. Mutation events
// for one document must be delivered in the order the host emitted them;
// the tracker applies each event's changes strictly in order, composing
// each with the result of the previous.
package pending
