package xmlutil

import (
	"encoding/xml"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrs(t *testing.T) {
	for _, tc := range []struct {
		attrs []xml.Attr
		want  map[string]string
	}{
		{},
		{
			attrs: []xml.Attr{
				{Name: xml.Name{Local: "TARGET_ID"}, Value: "t-1"},
				{Name: xml.Name{Local: "ultimate"}, Value: "1"},
			},
			want: map[string]string{"target_id": "t-1", "ultimate": "1"},
		},
		{
			attrs: []xml.Attr{
				{Name: xml.Name{Local: "xmlns"}, Value: "urn:example"},
				{Name: xml.Name{Space: "xmlns", Local: "g"}, Value: "urn:example"},
				{Name: xml.Name{Local: "id"}, Value: "x"},
			},
			want: map[string]string{"id": "x"},
		},
	} {
		t.Run(fmt.Sprintf("%v", tc.want), func(t *testing.T) {
			se := xml.StartElement{Name: xml.Name{Local: "e"}, Attr: tc.attrs}
			got := Attrs(se)
			if tc.want == nil {
				assert.New(t).Nil(got)
				return
			}
			assert.New(t).Equal(tc.want, got)
		})
	}
}

func TestFlags(t *testing.T) {
	ck := assert.New(t)
	ck.False(FlagAbsentFalse(""))
	ck.False(FlagAbsentFalse("0"))
	ck.True(FlagAbsentFalse("1"))
	ck.True(FlagAbsentFalse("yes"))

	ck.True(FlagAbsentTrue(""))
	ck.False(FlagAbsentTrue("0"))
	ck.True(FlagAbsentTrue("1"))
}
