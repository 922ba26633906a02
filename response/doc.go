/*
Package response renders the XML response envelopes sent back to the
client: one <COMMAND_response status="..." status_text="..."> element
per completed top-level command.

Bulk get_* responses are streamed. The encoder drains a Cursor one row
at a time, marshalling each row straight to the sink, so a response of
any size never materializes in memory. A failed sink write aborts the
drain and releases the cursor without raising a second error.
*/
package response
