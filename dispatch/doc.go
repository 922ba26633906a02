/*
Package dispatch hands completed command builders to the management
core and maps each outcome to exactly one response envelope.

The management core is an external collaborator behind the Core
interface: one method per command kind, each returning an Outcome.
The dispatcher owns command-end validation (required fields, malformed
values), the compensating teardown of partial allocations on failure
paths, and the guarantee that the builder is reset on every path.
*/
package dispatch
