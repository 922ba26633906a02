package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
	"github.com/greenbone/gvmd-sub000/xmlutil"
)

func init() {
	// get_* commands take all parameters as attributes and are
	// normally sent self-closing.
	root(gmp.CmdGetTasks, GetTasks,
		func(c *Context, attrs Attrs) {
			c.Builder = &command.GetTasks{
				ID:             attrs["task_id"],
				FilterString:   attrs["filter"],
				Details:        xmlutil.FlagAbsentFalse(attrs["details"]),
				ApplyOverrides: xmlutil.FlagAbsentTrue(attrs["apply_overrides"]),
			}
		},
		Authentic)

	root(gmp.CmdGetTargets, GetTargets,
		func(c *Context, attrs Attrs) {
			c.Builder = &command.GetTargets{
				ID:           attrs["target_id"],
				FilterString: attrs["filter"],
				Tasks:        xmlutil.FlagAbsentFalse(attrs["tasks"]),
			}
		},
		Authentic)

	root(gmp.CmdGetAlerts, GetAlerts,
		func(c *Context, attrs Attrs) {
			c.Builder = &command.GetAlerts{
				ID:           attrs["alert_id"],
				FilterString: attrs["filter"],
			}
		},
		Authentic)
}
