package machine

// Attrs are a start element's attributes keyed by lowercased name.
type Attrs = map[string]string

// Rule describes one recognized (state, element name) transition: the
// child state to enter and an optional builder mutation performed with
// the element's attributes.
type Rule struct {
	Next  State
	Enter func(c *Context, attrs Attrs)
}

// EndRule describes the end-tag behaviour of a state. Most states pop
// to Parent, running Leave first if set. States with Complete are
// command roots: their end tag hands the builder to the dispatcher,
// and the session decides the post-dispatch resting state.
type EndRule struct {
	Parent   State
	Leave    func(c *Context)
	Complete bool
}

var (
	start = map[State]map[string]Rule{}
	end   = map[State]EndRule{}
)

// Lookup resolves a start element against the transition table. A
// false return means the element is unrecognized in this state and its
// subtree must be skipped.
func Lookup(s State, name string) (Rule, bool) {
	r, ok := start[s][name]
	return r, ok
}

// AtEnd resolves the end-tag rule for a state. Every non-resting state
// registered in the table has one.
func AtEnd(s State) (EndRule, bool) {
	e, ok := end[s]
	return e, ok
}

// on registers a start-element rule. Registering the same name twice
// under one state is a table construction bug and panics at init.
func on(s State, name string, r Rule) {
	m := start[s]
	if m == nil {
		m = map[string]Rule{}
		start[s] = m
	}
	if _, dup := m[name]; dup {
		panic("machine: duplicate rule for " + s.String() + "/" + name)
	}
	m[name] = r
}

// leaf registers a text-bearing leaf element: entry clears and binds
// the field returned by bind, exit drops the binding.
func leaf(parent State, name string, next State, bind func(c *Context) *string) {
	on(parent, name, Rule{
		Next:  next,
		Enter: func(c *Context, _ Attrs) { c.StartText(bind(c)) },
	})
	end[next] = EndRule{Parent: parent, Leave: (*Context).EndText}
}

// group registers a plain container element with no text of its own.
func group(parent State, name string, next State, leave func(c *Context)) {
	on(parent, name, Rule{Next: next})
	end[next] = EndRule{Parent: parent, Leave: leave}
}

// root registers a command root element reachable from the given
// resting states. Its end rule marks command completion.
func root(name string, s State, enter func(c *Context, attrs Attrs), from ...State) {
	for _, f := range from {
		on(f, name, Rule{Next: s, Enter: enter})
	}
	end[s] = EndRule{Complete: true}
}
