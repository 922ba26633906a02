package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func tag(c *Context) *command.CreateTag { return c.Builder.(*command.CreateTag) }

func init() {
	root(gmp.CmdCreateTag, CreateTag,
		func(c *Context, _ Attrs) { c.Builder = &command.CreateTag{} },
		Authentic)

	leaf(CreateTag, "name", CreateTagName,
		func(c *Context) *string { return &tag(c).Name })
	leaf(CreateTag, "comment", CreateTagComment,
		func(c *Context) *string { return &tag(c).Comment })
	leaf(CreateTag, "value", CreateTagValue,
		func(c *Context) *string { return &tag(c).Value })
	leaf(CreateTag, "active", CreateTagActive,
		func(c *Context) *string { return &tag(c).Active })

	// The end tag seals the reference list; a repeated <resources>
	// block cannot grow it afterwards.
	group(CreateTag, "resources", CreateTagResources,
		func(c *Context) { tag(c).Resources.Terminate() })
	leaf(CreateTagResources, "type", CreateTagResourcesType,
		func(c *Context) *string { return &tag(c).ResourcesType })

	// Each resource reference may carry its id as an attribute, a
	// nested <id> element, or both; the element form wins when both
	// are present.
	on(CreateTagResources, "resource", Rule{
		Next: CreateTagResource,
		Enter: func(c *Context, attrs Attrs) {
			tag(c).Resources.Open().ID = attrs["id"]
		},
	})
	end[CreateTagResource] = EndRule{Parent: CreateTagResources}
	leaf(CreateTagResource, "id", CreateTagResourceID,
		func(c *Context) *string { return &tag(c).Resources.Current().ID })
}
