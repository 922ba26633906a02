package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func wizard(c *Context) *command.RunWizard { return c.Builder.(*command.RunWizard) }

func init() {
	root(gmp.CmdRunWizard, RunWizard,
		func(c *Context, _ Attrs) { c.Builder = &command.RunWizard{} },
		Authentic)

	leaf(RunWizard, "name", RunWizardName,
		func(c *Context) *string { return &wizard(c).Name })

	group(RunWizard, "params", RunWizardParams,
		func(c *Context) { wizard(c).Params.Terminate() })
	on(RunWizardParams, "param", Rule{
		Next:  RunWizardParam,
		Enter: func(c *Context, _ Attrs) { wizard(c).Params.Open() },
	})
	end[RunWizardParam] = EndRule{Parent: RunWizardParams}

	leaf(RunWizardParam, "name", RunWizardParamName,
		func(c *Context) *string { return &wizard(c).Params.Current().Name })
	leaf(RunWizardParam, "value", RunWizardParamValue,
		func(c *Context) *string { return &wizard(c).Params.Current().Value })
}
