package machine

import "fmt"

// State identifies the machine's position in the element forest. It is
// a pure value: transitions never allocate machine-owned resources,
// only builder fields do.
type State int

const (
	// Top is the initial, unauthenticated state.
	Top State = iota
	// Authentic is the resting state between commands once the session
	// has authenticated.
	Authentic

	Authenticate
	AuthenticateCredentials
	AuthenticateCredentialsUsername
	AuthenticateCredentialsPassword

	GetVersion

	CreateTarget
	CreateTargetName
	CreateTargetComment
	CreateTargetHosts
	CreateTargetExcludeHosts
	CreateTargetPortRange
	CreateTargetSSHCredential
	CreateTargetSSHCredentialPort
	CreateTargetAliveTests

	CreateTask
	CreateTaskName
	CreateTaskComment
	CreateTaskConfig
	CreateTaskTarget
	CreateTaskScanner
	CreateTaskSchedule
	CreateTaskAlert
	CreateTaskObservers
	CreateTaskPreferences
	CreateTaskPreference
	CreateTaskPreferenceName
	CreateTaskPreferenceValue

	CreateAlert
	CreateAlertName
	CreateAlertComment
	CreateAlertCondition
	CreateAlertConditionData
	CreateAlertConditionDataName
	CreateAlertEvent
	CreateAlertEventData
	CreateAlertEventDataName
	CreateAlertMethod
	CreateAlertMethodData
	CreateAlertMethodDataName
	CreateAlertFilter

	CreateTag
	CreateTagName
	CreateTagComment
	CreateTagValue
	CreateTagActive
	CreateTagResources
	CreateTagResourcesType
	CreateTagResource
	CreateTagResourceID

	GetTasks
	GetTargets
	GetAlerts

	DeleteTarget
	DeleteTask

	RunWizard
	RunWizardName
	RunWizardParams
	RunWizardParam
	RunWizardParamName
	RunWizardParamValue

	stateCount
)

var stateNames = map[State]string{
	Top:       "top",
	Authentic: "authentic",

	Authenticate:                    "authenticate",
	AuthenticateCredentials:         "authenticate/credentials",
	AuthenticateCredentialsUsername: "authenticate/credentials/username",
	AuthenticateCredentialsPassword: "authenticate/credentials/password",

	GetVersion: "get_version",

	CreateTarget:                  "create_target",
	CreateTargetName:              "create_target/name",
	CreateTargetComment:           "create_target/comment",
	CreateTargetHosts:             "create_target/hosts",
	CreateTargetExcludeHosts:      "create_target/exclude_hosts",
	CreateTargetPortRange:         "create_target/port_range",
	CreateTargetSSHCredential:     "create_target/ssh_credential",
	CreateTargetSSHCredentialPort: "create_target/ssh_credential/port",
	CreateTargetAliveTests:        "create_target/alive_tests",

	CreateTask:                "create_task",
	CreateTaskName:            "create_task/name",
	CreateTaskComment:         "create_task/comment",
	CreateTaskConfig:          "create_task/config",
	CreateTaskTarget:          "create_task/target",
	CreateTaskScanner:         "create_task/scanner",
	CreateTaskSchedule:        "create_task/schedule",
	CreateTaskAlert:           "create_task/alert",
	CreateTaskObservers:       "create_task/observers",
	CreateTaskPreferences:     "create_task/preferences",
	CreateTaskPreference:      "create_task/preferences/preference",
	CreateTaskPreferenceName:  "create_task/preferences/preference/scanner_name",
	CreateTaskPreferenceValue: "create_task/preferences/preference/value",

	CreateAlert:                  "create_alert",
	CreateAlertName:              "create_alert/name",
	CreateAlertComment:           "create_alert/comment",
	CreateAlertCondition:         "create_alert/condition",
	CreateAlertConditionData:     "create_alert/condition/data",
	CreateAlertConditionDataName: "create_alert/condition/data/name",
	CreateAlertEvent:             "create_alert/event",
	CreateAlertEventData:         "create_alert/event/data",
	CreateAlertEventDataName:     "create_alert/event/data/name",
	CreateAlertMethod:            "create_alert/method",
	CreateAlertMethodData:        "create_alert/method/data",
	CreateAlertMethodDataName:    "create_alert/method/data/name",
	CreateAlertFilter:            "create_alert/filter",

	CreateTag:              "create_tag",
	CreateTagName:          "create_tag/name",
	CreateTagComment:       "create_tag/comment",
	CreateTagValue:         "create_tag/value",
	CreateTagActive:        "create_tag/active",
	CreateTagResources:     "create_tag/resources",
	CreateTagResourcesType: "create_tag/resources/type",
	CreateTagResource:      "create_tag/resources/resource",
	CreateTagResourceID:    "create_tag/resources/resource/id",

	GetTasks:   "get_tasks",
	GetTargets: "get_targets",
	GetAlerts:  "get_alerts",

	DeleteTarget: "delete_target",
	DeleteTask:   "delete_task",

	RunWizard:           "run_wizard",
	RunWizardName:       "run_wizard/name",
	RunWizardParams:     "run_wizard/params",
	RunWizardParam:      "run_wizard/params/param",
	RunWizardParamName:  "run_wizard/params/param/name",
	RunWizardParamValue: "run_wizard/params/param/value",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}
