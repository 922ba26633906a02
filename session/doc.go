/*
Package session composes the protocol engine visible to a connection
owner: the state machine, authentication gate, dispatcher and response
encoder, driven by the XML token stream of one client connection.

A Session is single-threaded: whichever goroutine owns the connection
drives Run. Multiple Sessions run concurrently across connections with
no shared mutable state except the management core.

A Session returns to its resting state (Top before authentication,
Authentic after) following every completed command and every
recoverable protocol error. Tokenizer-level malformation is not
recoverable: Run returns the error and the connection owner decides
whether to close the transport.

Re-entrant execution is supported with RunSub, which saves the full
parse state, runs a sub-document against a private capture buffer and
restores the outer state; run_wizard playback is built on it.
*/
package session
