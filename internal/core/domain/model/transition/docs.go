// Package transition models the durable queue of timed status changes.
// A PendingTransition says "move order X from status A to status B once
// dueAt has passed". Entries are never deleted; they are marked processed.
package transition
