/*
Package command defines the per-command accumulator records filled by
the state machine while a command's element subtree is being parsed.

Each command kind has one builder struct. A Session owns at most one
live builder at a time; it is created when the command's start element
is recognized and Reset immediately after dispatch, on success and
failure alike, so no field value can leak into a later command of the
same kind.

Boolean attribute semantics differ between commands on the wire; each
builder documents its own flag contract rather than assuming a single
parsing rule.
*/
package command
