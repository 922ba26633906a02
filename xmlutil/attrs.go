package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Attrs folds a start element's attributes into a map keyed by the
// lowercased local attribute name. The protocol matches names
// case-insensitively, and no command uses namespaced attributes.
func Attrs(se xml.StartElement) map[string]string {
	if len(se.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		m[strings.ToLower(a.Name.Local)] = a.Value
	}
	return m
}

// FlagAbsentFalse decodes a boolean attribute or element text whose
// contract is: absent or "0" is false, anything else is true.
// Used by the delete_* ultimate and get_* details flags.
func FlagAbsentFalse(v string) bool { return v != "" && v != "0" }

// FlagAbsentTrue decodes a boolean whose contract is: absent is true,
// "0" is false, anything else is true. Used by flags such as
// get_tasks apply_overrides and create_tag active.
func FlagAbsentTrue(v string) bool { return v != "0" }
