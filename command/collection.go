package command

// NameValue is one entry of an ordered name/value collection, e.g. an
// alert condition datum or a task preference.
type NameValue struct {
	Name  string
	Value string
}

// NameValues is an ordered collection of NameValue entries. Entries are
// opened during nested start elements, filled by text events and sealed
// at the owning element's end tag. A terminated collection accepts no
// further entries until Reset.
type NameValues struct {
	Items []NameValue

	terminated bool
	discard    NameValue
}

// Open appends a fresh entry and returns it for filling. Opening a
// terminated collection appends nothing; the returned entry is a
// discard slot, so a client repeating the owning element cannot grow
// the sealed sequence or crash the parse.
func (c *NameValues) Open() *NameValue {
	if c.terminated {
		c.discard = NameValue{}
		return &c.discard
	}
	c.Items = append(c.Items, NameValue{})
	return &c.Items[len(c.Items)-1]
}

// Current returns the entry being filled, or the discard slot when
// none is open.
func (c *NameValues) Current() *NameValue {
	if c.terminated || len(c.Items) == 0 {
		return &c.discard
	}
	return &c.Items[len(c.Items)-1]
}

// Terminate seals the collection into a fixed sequence.
func (c *NameValues) Terminate() { c.terminated = true }

// Terminated reports whether the collection has been sealed.
func (c *NameValues) Terminated() bool { return c.terminated }

// Reset empties the collection and reopens it.
func (c *NameValues) Reset() { *c = NameValues{} }

// ResourceRef is an id reference to an existing resource, taken from an
// id attribute or a nested <id> element.
type ResourceRef struct {
	ID string
}

// ResourceRefs is an ordered collection of resource references with
// the same sealing discipline as NameValues: the owning element's end
// tag terminates the sequence, and entries opened after that land in a
// discard slot instead of growing it.
type ResourceRefs struct {
	Items []ResourceRef

	terminated bool
	discard    ResourceRef
}

// Open appends a fresh reference and returns it for filling, or the
// discard slot once the collection is terminated.
func (c *ResourceRefs) Open() *ResourceRef {
	if c.terminated {
		c.discard = ResourceRef{}
		return &c.discard
	}
	c.Items = append(c.Items, ResourceRef{})
	return &c.Items[len(c.Items)-1]
}

// Current returns the reference being filled, or the discard slot when
// none is open.
func (c *ResourceRefs) Current() *ResourceRef {
	if c.terminated || len(c.Items) == 0 {
		return &c.discard
	}
	return &c.Items[len(c.Items)-1]
}

// Terminate seals the collection into a fixed sequence.
func (c *ResourceRefs) Terminate() { c.terminated = true }

// Terminated reports whether the collection has been sealed.
func (c *ResourceRefs) Terminated() bool { return c.terminated }

// Reset empties the collection and reopens it.
func (c *ResourceRefs) Reset() { *c = ResourceRefs{} }
