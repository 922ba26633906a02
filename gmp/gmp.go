package gmp

import "strings"

// Response status codes.
const (
	StatusOK                 = "200"
	StatusCreated            = "201"
	StatusSubmitted          = "202"
	StatusSyntax             = "400"
	StatusPermissionDenied   = "403"
	StatusNotFound           = "404"
	StatusConflict           = "409"
	StatusInternal           = "500"
	StatusServiceUnavailable = "503"
)

// Fixed status texts accompanying the codes above. The block carries
// the protocol's full response vocabulary; not every text has a
// dedicated emitting command here.
const (
	TextOK               = "OK"
	TextCreated          = "OK, resource created"
	TextSubmitted        = "OK, request submitted"
	TextAuthRequired     = "Must authenticate first"
	TextBogusCommand     = "Bogus command name"
	TextPermissionDenied = "Permission denied"
	TextInternal         = "Internal error"
	TextCommandDisabled  = "Service unavailable: command disabled"
	TextBusy             = "Service temporarily down"
)

// Command names accepted before authentication.
const (
	CmdAuthenticate = "authenticate"
	CmdGetVersion   = "get_version"
)

// Post-authentication command names implemented by this engine.
const (
	CmdCreateAlert  = "create_alert"
	CmdCreateTag    = "create_tag"
	CmdCreateTarget = "create_target"
	CmdCreateTask   = "create_task"
	CmdDeleteTarget = "delete_target"
	CmdDeleteTask   = "delete_task"
	CmdGetAlerts    = "get_alerts"
	CmdGetTargets   = "get_targets"
	CmdGetTasks     = "get_tasks"
	CmdRunWizard    = "run_wizard"
)

// Version is the protocol version reported by get_version.
const Version = "22.4"

// Normalize folds an element or attribute name to the canonical form
// used in the transition tables. Element names are matched
// case-insensitively on the wire.
func Normalize(name string) string { return strings.ToLower(name) }
