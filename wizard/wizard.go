// Package wizard implements run_wizard: scripted sequences of
// commands replayed through the session's own engine. Each step's
// command is substituted with the caller's parameters, executed
// re-entrantly, and its captured response checked before the next
// step runs.
package wizard

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/dispatch"
)

//go:embed scripts/*.xml
var scripts embed.FS

var xpSteps = xpath.MustCompile("/wizard/step/command/*")

// Replay executes one sub-command document on the owning session and
// returns the captured response bytes. The session saves and restores
// its full parse state around the call.
type Replay func(doc string) ([]byte, error)

// Run executes the named wizard. Unknown names map to a not-found
// outcome; a step answering with a non-2xx status aborts the sequence.
// On success the outcome body wraps every step's captured response.
func Run(b *command.RunWizard, replay Replay) dispatch.Outcome {
	steps, err := load(b.Name)
	if err != nil {
		return dispatch.NotFound("wizard", b.Name)
	}

	params := map[string]string{}
	for _, p := range b.Params.Items {
		params[p.Name] = p.Value
	}

	var body bytes.Buffer
	body.WriteString("<response>")
	for i, step := range steps {
		doc := substitute(step, params)
		captured, rerr := replay(doc)
		if rerr != nil {
			return dispatch.Fatal(errors.Wrapf(rerr, "wizard %s step %d", b.Name, i+1))
		}
		body.Write(captured)

		status, elem := stepStatus(captured)
		if !strings.HasPrefix(status, "2") {
			return dispatch.Invalid(fmt.Sprintf(
				"Wizard %s step %d (%s) failed with status %s", b.Name, i+1, elem, status))
		}
		// later steps may reference the id a step just created
		if id := createdID(captured); id != "" {
			params["previous_id"] = id
		}
	}
	body.WriteString("</response>")
	return dispatch.RawBody(body.Bytes())
}

// load reads the named script from the embedded set. Names are plain
// identifiers; anything resembling a path is refused outright.
func load(name string) ([]string, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return nil, errors.Errorf("invalid wizard name %q", name)
	}
	f, err := scripts.Open("scripts/" + name + ".xml")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "wizard script %s", name)
	}
	var steps []string
	for _, node := range xmlquery.QuerySelectorAll(doc, xpSteps) {
		steps = append(steps, node.OutputXML(true))
	}
	if len(steps) == 0 {
		return nil, errors.Errorf("wizard script %s has no steps", name)
	}
	return steps, nil
}

// substitute replaces %{name} placeholders with escaped parameter
// values. Unknown placeholders are left as-is.
func substitute(doc string, params map[string]string) string {
	for name, value := range params {
		doc = strings.ReplaceAll(doc, "%{"+name+"}", escape(value))
	}
	return doc
}

func escape(v string) string {
	r := strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")
	return r.Replace(v)
}

// stepStatus extracts the status attribute and element name of a
// captured step response.
func stepStatus(captured []byte) (status, elem string) {
	doc, err := xmlquery.Parse(bytes.NewReader(captured))
	if err != nil {
		return "", ""
	}
	node := xmlquery.FindOne(doc, "/*")
	if node == nil {
		return "", ""
	}
	return node.SelectAttr("status"), node.Data
}

func createdID(captured []byte) string {
	doc, err := xmlquery.Parse(bytes.NewReader(captured))
	if err != nil {
		return ""
	}
	if node := xmlquery.FindOne(doc, "/*[@id]"); node != nil {
		return node.SelectAttr("id")
	}
	return ""
}
