package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func alert(c *Context) *command.CreateAlert { return c.Builder.(*command.CreateAlert) }

// alertPart wires one of the condition/event/method subtrees. Each is
// mixed content: the part element's own text names the part, while
// repeated <data> children carry ordered values whose names arrive in
// a nested <name> element. Text around the children keeps appending to
// the part after each child closes.
func alertPart(name string, part, data, dataName State,
	text func(c *Context) *string, coll func(c *Context) *command.NameValues) {

	on(CreateAlert, name, Rule{
		Next:  part,
		Enter: func(c *Context, _ Attrs) { c.StartText(text(c)) },
	})
	end[part] = EndRule{Parent: CreateAlert, Leave: func(c *Context) {
		coll(c).Terminate()
		c.EndText()
	}}

	on(part, "data", Rule{
		Next: data,
		Enter: func(c *Context, _ Attrs) {
			c.StartText(&coll(c).Open().Value)
		},
	})
	end[data] = EndRule{Parent: part, Leave: func(c *Context) {
		c.RetargetText(text(c))
	}}

	on(data, "name", Rule{
		Next: dataName,
		Enter: func(c *Context, _ Attrs) {
			c.StartText(&coll(c).Current().Name)
		},
	})
	end[dataName] = EndRule{Parent: data, Leave: func(c *Context) {
		c.RetargetText(&coll(c).Current().Value)
	}}
}

func init() {
	root(gmp.CmdCreateAlert, CreateAlert,
		func(c *Context, _ Attrs) { c.Builder = &command.CreateAlert{} },
		Authentic)

	leaf(CreateAlert, "name", CreateAlertName,
		func(c *Context) *string { return &alert(c).Name })
	leaf(CreateAlert, "comment", CreateAlertComment,
		func(c *Context) *string { return &alert(c).Comment })
	idAttr(CreateAlert, "filter", CreateAlertFilter,
		func(c *Context, id string) { alert(c).FilterID = id })

	alertPart("condition", CreateAlertCondition, CreateAlertConditionData, CreateAlertConditionDataName,
		func(c *Context) *string { return &alert(c).Condition },
		func(c *Context) *command.NameValues { return &alert(c).ConditionData })
	alertPart("event", CreateAlertEvent, CreateAlertEventData, CreateAlertEventDataName,
		func(c *Context) *string { return &alert(c).Event },
		func(c *Context) *command.NameValues { return &alert(c).EventData })
	alertPart("method", CreateAlertMethod, CreateAlertMethodData, CreateAlertMethodDataName,
		func(c *Context) *string { return &alert(c).Method },
		func(c *Context) *command.NameValues { return &alert(c).MethodData })
}
