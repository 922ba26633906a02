package gmp

import "encoding/xml"

// Task is the <task> fragment streamed inside get_tasks_response.
// ApplyOverrides echoes the effective flag of the request; Preferences
// is only populated when details were requested.
type Task struct {
	XMLName        xml.Name         `xml:"task"`
	ID             string           `xml:"id,attr"`
	Name           string           `xml:"name"`
	Comment        string           `xml:"comment,omitempty"`
	Status         string           `xml:"status"`
	ApplyOverrides *int             `xml:"apply_overrides,omitempty"`
	Target         *Ref             `xml:"target,omitempty"`
	Preferences    []TaskPreference `xml:"preferences>preference,omitempty"`
}

// TaskPreference is a scanner preference attached to a task.
type TaskPreference struct {
	Name  string `xml:"scanner_name"`
	Value string `xml:"value"`
}

// Target is the <target> fragment streamed inside get_targets_response.
// Tasks carries the referencing tasks when the request asked for them.
type Target struct {
	XMLName      xml.Name `xml:"target"`
	ID           string   `xml:"id,attr"`
	Name         string   `xml:"name"`
	Comment      string   `xml:"comment,omitempty"`
	Hosts        string   `xml:"hosts"`
	ExcludeHosts string   `xml:"exclude_hosts,omitempty"`
	PortRange    string   `xml:"port_range,omitempty"`
	InUse        int      `xml:"in_use"`
	Tasks        []Ref    `xml:"tasks>task,omitempty"`
}

// Alert is the <alert> fragment streamed inside get_alerts_response.
type Alert struct {
	XMLName   xml.Name `xml:"alert"`
	ID        string   `xml:"id,attr"`
	Name      string   `xml:"name"`
	Comment   string   `xml:"comment,omitempty"`
	Condition string   `xml:"condition"`
	Event     string   `xml:"event"`
	Method    string   `xml:"method"`
}

// Ref is an id reference to another resource, e.g. a task's target.
type Ref struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,omitempty"`
}

// VersionBody is the body of get_version_response.
type VersionBody struct {
	XMLName xml.Name `xml:"version"`
	Value   string   `xml:",chardata"`
}
