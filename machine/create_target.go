package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func target(c *Context) *command.CreateTarget { return c.Builder.(*command.CreateTarget) }

func init() {
	root(gmp.CmdCreateTarget, CreateTarget,
		func(c *Context, _ Attrs) { c.Builder = &command.CreateTarget{} },
		Authentic)

	leaf(CreateTarget, "name", CreateTargetName,
		func(c *Context) *string { return &target(c).Name })
	leaf(CreateTarget, "comment", CreateTargetComment,
		func(c *Context) *string { return &target(c).Comment })
	leaf(CreateTarget, "hosts", CreateTargetHosts,
		func(c *Context) *string { return &target(c).Hosts })
	leaf(CreateTarget, "exclude_hosts", CreateTargetExcludeHosts,
		func(c *Context) *string { return &target(c).ExcludeHosts })
	leaf(CreateTarget, "port_range", CreateTargetPortRange,
		func(c *Context) *string { return &target(c).PortRange })
	leaf(CreateTarget, "alive_tests", CreateTargetAliveTests,
		func(c *Context) *string { return &target(c).AliveTests })

	// ssh_credential carries the credential reference in its id
	// attribute and an optional <port> child.
	on(CreateTarget, "ssh_credential", Rule{
		Next: CreateTargetSSHCredential,
		Enter: func(c *Context, attrs Attrs) {
			target(c).SSHCredentialID = attrs["id"]
		},
	})
	end[CreateTargetSSHCredential] = EndRule{Parent: CreateTarget}
	leaf(CreateTargetSSHCredential, "port", CreateTargetSSHCredentialPort,
		func(c *Context) *string { return &target(c).SSHPort })
}
