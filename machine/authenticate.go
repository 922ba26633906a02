package machine

import (
	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
)

func auth(c *Context) *command.Authenticate { return c.Builder.(*command.Authenticate) }

func init() {
	// authenticate is reachable before authentication and may also be
	// replayed on an authenticated session.
	root(gmp.CmdAuthenticate, Authenticate,
		func(c *Context, _ Attrs) { c.Builder = &command.Authenticate{} },
		Top, Authentic)

	group(Authenticate, "credentials", AuthenticateCredentials, nil)
	leaf(AuthenticateCredentials, "username", AuthenticateCredentialsUsername,
		func(c *Context) *string { return &auth(c).Username })
	leaf(AuthenticateCredentials, "password", AuthenticateCredentialsPassword,
		func(c *Context) *string { return &auth(c).Password })

	root(gmp.CmdGetVersion, GetVersion,
		func(c *Context, _ Attrs) { c.Builder = &command.GetVersion{} },
		Top, Authentic)
}
