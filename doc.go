/*
Package gvmd is a server-side implementation of the Greenbone
Management Protocol command layer.

The engine consumes a client's XML command stream incrementally and
answers every top-level command element with exactly one response
envelope. Parsing is a table-driven state machine fed by xml.Decoder
events, so input chunking never changes behavior; unknown elements are
skipped as whole subtrees.

Sub-packages:

  - gmp: protocol constants, status codes and response row fragments
  - gmperr: protocol errors carrying status codes and texts
  - command: per-command builder structs filled during parsing
  - machine: the transition tables and parse-time accumulation
  - session: the per-connection engine tying it all together
  - dispatch: command validation and the management core interface
  - response: the streaming response encoder and result cursors
  - wizard: scripted command sequences replayed through a session
  - sqlcore: the SQLite backed management core
  - cmd/gvmd: the TCP server binary

See the session package for the engine's lifecycle and re-entrancy
rules.
*/
package gvmd
