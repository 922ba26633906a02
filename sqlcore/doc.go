// Package sqlcore is a SQLite-backed management core. It owns the
// resource tables behind the command engine: users, targets, tasks,
// alerts and tags. Result sets are handed to the caller as cursors
// over live sql.Rows so large listings stream without buffering.
package sqlcore
