package machine

// Skip tracks an active skip region: a subtree of unrecognized
// elements being discarded. Depth counting covers nested unknown
// children, so a single (parent, depth) pair suffices; a second region
// is never opened while one is active.
type Skip struct {
	// Parent is the state to restore when the region closes.
	Parent State
	// Depth is the count of unclosed elements inside the region.
	Depth int
}

// Open starts a skip region rooted at the element just seen.
func Open(parent State) *Skip { return &Skip{Parent: parent, Depth: 1} }

// Start records a nested start element inside the region.
func (k *Skip) Start() { k.Depth++ }

// End records an end element. It returns true when the region has
// fully closed and the caller must restore Parent.
func (k *Skip) End() bool {
	k.Depth--
	return k.Depth == 0
}
