package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func task(c *Context) *command.CreateTask { return c.Builder.(*command.CreateTask) }

// idAttr registers a reference element whose payload is its id
// attribute, e.g. <target id="..."/> inside create_task.
func idAttr(parent State, name string, next State, set func(c *Context, id string)) {
	on(parent, name, Rule{
		Next:  next,
		Enter: func(c *Context, attrs Attrs) { set(c, attrs["id"]) },
	})
	end[next] = EndRule{Parent: parent}
}

func init() {
	root(gmp.CmdCreateTask, CreateTask,
		func(c *Context, _ Attrs) { c.Builder = &command.CreateTask{} },
		Authentic)

	leaf(CreateTask, "name", CreateTaskName,
		func(c *Context) *string { return &task(c).Name })
	leaf(CreateTask, "comment", CreateTaskComment,
		func(c *Context) *string { return &task(c).Comment })
	leaf(CreateTask, "observers", CreateTaskObservers,
		func(c *Context) *string { return &task(c).Observers })

	idAttr(CreateTask, "config", CreateTaskConfig,
		func(c *Context, id string) { task(c).ConfigID = id })
	idAttr(CreateTask, "target", CreateTaskTarget,
		func(c *Context, id string) { task(c).TargetID = id })
	idAttr(CreateTask, "scanner", CreateTaskScanner,
		func(c *Context, id string) { task(c).ScannerID = id })
	idAttr(CreateTask, "schedule", CreateTaskSchedule,
		func(c *Context, id string) { task(c).ScheduleID = id })

	// alert may repeat; each occurrence appends one reference.
	on(CreateTask, "alert", Rule{
		Next: CreateTaskAlert,
		Enter: func(c *Context, attrs Attrs) {
			task(c).Alerts = append(task(c).Alerts, command.ResourceRef{ID: attrs["id"]})
		},
	})
	end[CreateTaskAlert] = EndRule{Parent: CreateTask}

	group(CreateTask, "preferences", CreateTaskPreferences,
		func(c *Context) { task(c).Preferences.Terminate() })
	on(CreateTaskPreferences, "preference", Rule{
		Next:  CreateTaskPreference,
		Enter: func(c *Context, _ Attrs) { task(c).Preferences.Open() },
	})
	end[CreateTaskPreference] = EndRule{Parent: CreateTaskPreferences}

	prefText := func(field func(nv *command.NameValue) *string) func(c *Context) *string {
		return func(c *Context) *string { return field(task(c).Preferences.Current()) }
	}
	leaf(CreateTaskPreference, "scanner_name", CreateTaskPreferenceName,
		prefText(func(nv *command.NameValue) *string { return &nv.Name }))
	leaf(CreateTaskPreference, "value", CreateTaskPreferenceValue,
		prefText(func(nv *command.NameValue) *string { return &nv.Value }))
}
