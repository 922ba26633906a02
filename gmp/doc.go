/*
Package gmp holds the protocol vocabulary shared by the engine packages:
command names, response status codes and their fixed status texts, and
the XML entity fragments rendered into bulk responses.

Status codes are short string tokens carried verbatim in the status
attribute of every COMMAND_response element. They are constants of the
protocol, mirrored here rather than computed.
*/
package gmp
