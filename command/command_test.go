package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderReset(t *testing.T) {
	for _, tc := range []struct {
		name  string
		fill  func() Builder
		check func(*assert.Assertions, Builder)
	}{
		{
			name: "authenticate",
			fill: func() Builder { return &Authenticate{Username: "a", Password: "b"} },
			check: func(ck *assert.Assertions, b Builder) {
				ck.Equal(Authenticate{}, *b.(*Authenticate))
			},
		},
		{
			name: "create_target",
			fill: func() Builder {
				return &CreateTarget{Name: "t", Hosts: "10.0.0.1", PortRange: "1-1024"}
			},
			check: func(ck *assert.Assertions, b Builder) {
				ck.Equal(CreateTarget{}, *b.(*CreateTarget))
			},
		},
		{
			name: "create_task",
			fill: func() Builder {
				b := &CreateTask{Name: "scan", TargetID: "t-1"}
				b.Alerts = append(b.Alerts, ResourceRef{ID: "a-1"})
				nv := b.Preferences.Open()
				nv.Name, nv.Value = "max_hosts", "20"
				b.Preferences.Terminate()
				return b
			},
			check: func(ck *assert.Assertions, b Builder) {
				ct := b.(*CreateTask)
				ck.Empty(ct.Alerts)
				ck.Empty(ct.Preferences.Items)
				ck.False(ct.Preferences.Terminated())
			},
		},
		{
			name: "create_tag",
			fill: func() Builder {
				b := &CreateTag{Name: "env", ResourcesType: "target"}
				b.Resources.Open().ID = "r1"
				b.Resources.Terminate()
				return b
			},
			check: func(ck *assert.Assertions, b Builder) {
				ct := b.(*CreateTag)
				ck.Empty(ct.Resources.Items)
				ck.False(ct.Resources.Terminated())
			},
		},
		{
			name: "delete_target",
			fill: func() Builder { return &DeleteTarget{ID: "t-1", Ultimate: true} },
			check: func(ck *assert.Assertions, b Builder) {
				ck.Equal(DeleteTarget{}, *b.(*DeleteTarget))
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.fill()
			b.Reset()
			tc.check(assert.New(t), b)
		})
	}
}

func TestNameValues(t *testing.T) {
	ck := assert.New(t)
	var c NameValues

	nv := c.Open()
	require.NotNil(t, nv)
	nv.Name = "first"
	ck.Equal("first", c.Current().Name)

	c.Current().Value = "1"
	nv = c.Open()
	require.NotNil(t, nv)
	nv.Name, nv.Value = "second", "2"

	c.Terminate()
	ck.True(c.Terminated())

	// a terminated collection swallows further writes instead of
	// growing the sealed sequence
	c.Open().Name = "late"
	c.Current().Value = "late"
	ck.Equal([]NameValue{{"first", "1"}, {"second", "2"}}, c.Items)

	c.Reset()
	ck.False(c.Terminated())
	ck.Empty(c.Items)
	ck.NotNil(c.Open())
}

func TestResourceRefs(t *testing.T) {
	ck := assert.New(t)
	var c ResourceRefs

	c.Open().ID = "r1"
	ck.Equal("r1", c.Current().ID)
	c.Open().ID = "r2"

	c.Terminate()
	ck.True(c.Terminated())

	// the sealed sequence swallows further references
	c.Open().ID = "late"
	c.Current().ID = "late"
	ck.Equal([]ResourceRef{{ID: "r1"}, {ID: "r2"}}, c.Items)

	c.Reset()
	ck.False(c.Terminated())
	ck.Empty(c.Items)
}
