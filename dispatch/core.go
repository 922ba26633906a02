package dispatch

import "github.com/greenbone/gvmd-sub000/command"

// Credentials are the fields of an authenticate command.
type Credentials struct {
	Username string
	Password string
}

// Core is the management layer the engine dispatches completed
// commands to: one method per command kind, each returning an Outcome.
// Its internal concurrency discipline is its own concern; the engine
// calls it synchronously from the session goroutine.
type Core interface {
	Version() Outcome
	Authenticate(Credentials) Outcome
	CreateTarget(*command.CreateTarget) Outcome
	CreateTask(*command.CreateTask) Outcome
	CreateAlert(*command.CreateAlert) Outcome
	CreateTag(*command.CreateTag) Outcome
	GetTasks(*command.GetTasks) Outcome
	GetTargets(*command.GetTargets) Outcome
	GetAlerts(*command.GetAlerts) Outcome
	DeleteTarget(*command.DeleteTarget) Outcome
	DeleteTask(*command.DeleteTask) Outcome
}
