/*
Package machine holds the protocol state machine driven by XML start,
text and end events.

States form a forest keyed by element nesting path, rooted at Top
(unauthenticated) and Authentic. Transitions are table driven: each
command registers its element subtree as (state, element name) rules
in an init function, where a rule names the child state and an enter
action that mutates the active command builder. End-tag rules pop back
to the parent state or, for command root states, mark the command
complete for dispatch.

An element name with no rule for the current state opens a skip
region: the whole unknown subtree is consumed by depth counting and
the machine resumes in the exact pre-skip state. Unknown elements are
never an error by themselves; only validation at command end is.
*/
package machine
