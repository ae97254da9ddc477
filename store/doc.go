// Package store keeps per-tick population snapshots in LevelDB.
//
// Keys are `tick/<tick>/creature/<id>`, with zero padded decimal numbers
// so that LevelDB key order is numeric order. Values are the JSON encoding
// of a creature.Snapshot.
package store
