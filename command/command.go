package command

import "github.com/greenbone/gvmd-sub000/gmp"

// Builder is the accumulator for one in-flight command. Reset must
// return the builder to its zero state; it is called after every
// dispatch regardless of outcome.
type Builder interface {
	Kind() string
	Reset()
}

// Authenticate accumulates the authenticate command. Credential fields
// are cleared by the session when authentication fails.
type Authenticate struct {
	Username string
	Password string
}

func (b *Authenticate) Kind() string { return gmp.CmdAuthenticate }
func (b *Authenticate) Reset()       { *b = Authenticate{} }

// GetVersion accumulates the get_version command. It has no fields;
// the command is permitted before authentication.
type GetVersion struct{}

func (b *GetVersion) Kind() string { return gmp.CmdGetVersion }
func (b *GetVersion) Reset()       { *b = GetVersion{} }

// CreateTarget accumulates the create_target command.
type CreateTarget struct {
	Name            string
	Comment         string
	Hosts           string
	ExcludeHosts    string
	PortRange       string
	SSHCredentialID string
	SSHPort         string
	AliveTests      string
}

func (b *CreateTarget) Kind() string { return gmp.CmdCreateTarget }
func (b *CreateTarget) Reset()       { *b = CreateTarget{} }

// CreateTask accumulates the create_task command, including its alert
// reference list and ordered preference collection.
type CreateTask struct {
	Name        string
	Comment     string
	ConfigID    string
	TargetID    string
	ScannerID   string
	ScheduleID  string
	Observers   string
	Alerts      []ResourceRef
	Preferences NameValues
}

func (b *CreateTask) Kind() string { return gmp.CmdCreateTask }
func (b *CreateTask) Reset()       { *b = CreateTask{} }

// CreateAlert accumulates the create_alert command. Condition, Event
// and Method mix element text with ordered <data> children whose
// names arrive in a nested <name> element.
type CreateAlert struct {
	Name          string
	Comment       string
	Condition     string
	Event         string
	Method        string
	FilterID      string
	ConditionData NameValues
	EventData     NameValues
	MethodData    NameValues
}

func (b *CreateAlert) Kind() string { return gmp.CmdCreateAlert }
func (b *CreateAlert) Reset()       { *b = CreateAlert{} }

// CreateTag accumulates the create_tag command and its attached
// resource id list.
//
// Flag contract: <active> treats an absent element as true and the
// text "0" as false; any other text is true.
type CreateTag struct {
	Name          string
	Comment       string
	Value         string
	Active        string
	ResourcesType string
	Resources     ResourceRefs
}

func (b *CreateTag) Kind() string { return gmp.CmdCreateTag }
func (b *CreateTag) Reset()       { *b = CreateTag{} }

// GetTasks accumulates the get_tasks command. All parameters arrive as
// attributes of the (usually self-closing) element.
//
// Flag contract: details is false when absent or "0"; apply_overrides
// is true when absent and false only for "0".
type GetTasks struct {
	ID             string
	FilterString   string
	Details        bool
	ApplyOverrides bool
}

func (b *GetTasks) Kind() string { return gmp.CmdGetTasks }
func (b *GetTasks) Reset()       { *b = GetTasks{} }

// GetTargets accumulates the get_targets command.
//
// Flag contract: tasks is false when absent or "0".
type GetTargets struct {
	ID           string
	FilterString string
	Tasks        bool
}

func (b *GetTargets) Kind() string { return gmp.CmdGetTargets }
func (b *GetTargets) Reset()       { *b = GetTargets{} }

// GetAlerts accumulates the get_alerts command.
type GetAlerts struct {
	ID           string
	FilterString string
}

func (b *GetAlerts) Kind() string { return gmp.CmdGetAlerts }
func (b *GetAlerts) Reset()       { *b = GetAlerts{} }

// DeleteTarget accumulates the delete_target command.
//
// Flag contract: ultimate is false when absent or "0"; any other
// value is true.
type DeleteTarget struct {
	ID       string
	Ultimate bool
}

func (b *DeleteTarget) Kind() string { return gmp.CmdDeleteTarget }
func (b *DeleteTarget) Reset()       { *b = DeleteTarget{} }

// DeleteTask accumulates the delete_task command. Same flag contract
// as DeleteTarget.
type DeleteTask struct {
	ID       string
	Ultimate bool
}

func (b *DeleteTask) Kind() string { return gmp.CmdDeleteTask }
func (b *DeleteTask) Reset()       { *b = DeleteTask{} }

// RunWizard accumulates the run_wizard command: a wizard name plus an
// ordered parameter collection substituted into the wizard's scripted
// command sequence.
type RunWizard struct {
	Name   string
	Params NameValues
}

func (b *RunWizard) Kind() string { return gmp.CmdRunWizard }
func (b *RunWizard) Reset()       { *b = RunWizard{} }
