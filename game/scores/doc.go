// Package scores keeps the append-only log of completed holes in SQLite.
//
// Records are written once when a round finishes and never updated. The
// store is opened with Open, which applies the embedded schema.
package scores
