package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
	"github.com/greenbone/gvmd-sub000/xmlutil"
)

func init() {
	root(gmp.CmdDeleteTarget, DeleteTarget,
		func(c *Context, attrs Attrs) {
			c.Builder = &command.DeleteTarget{
				ID:       attrs["target_id"],
				Ultimate: xmlutil.FlagAbsentFalse(attrs["ultimate"]),
			}
		},
		Authentic)

	root(gmp.CmdDeleteTask, DeleteTask,
		func(c *Context, attrs Attrs) {
			c.Builder = &command.DeleteTask{
				ID:       attrs["task_id"],
				Ultimate: xmlutil.FlagAbsentFalse(attrs["ultimate"]),
			}
		},
		Authentic)
}
