package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/dispatch"
	"github.com/greenbone/gvmd-sub000/gmp"
	"github.com/greenbone/gvmd-sub000/response"
)

// testCore is an in-memory management core fake. It copies what it
// needs from each builder during the call, since builders are reset
// the moment dispatch returns.
type testCore struct {
	user, password string

	targets  []command.CreateTarget
	tasks    []command.CreateTask
	alerts   []command.CreateAlert
	tags     []command.CreateTag
	getTasks func(*command.GetTasks) dispatch.Outcome
}

func newTestCore() *testCore { return &testCore{user: "admin", password: "secret"} }

func (c *testCore) Version() dispatch.Outcome {
	return dispatch.BodyOf(gmp.VersionBody{Value: gmp.Version})
}

func (c *testCore) Authenticate(creds dispatch.Credentials) dispatch.Outcome {
	if creds.Username == c.user && creds.Password == c.password {
		return dispatch.OK()
	}
	return dispatch.Invalid("bad credentials")
}

func (c *testCore) CreateTarget(b *command.CreateTarget) dispatch.Outcome {
	c.targets = append(c.targets, *b)
	return dispatch.Created(fmt.Sprintf("target-%d", len(c.targets)))
}

func (c *testCore) CreateTask(b *command.CreateTask) dispatch.Outcome {
	cp := *b
	cp.Alerts = append([]command.ResourceRef(nil), b.Alerts...)
	c.tasks = append(c.tasks, cp)
	return dispatch.Created(fmt.Sprintf("task-%d", len(c.tasks)))
}

func (c *testCore) CreateAlert(b *command.CreateAlert) dispatch.Outcome {
	c.alerts = append(c.alerts, *b)
	return dispatch.Created(fmt.Sprintf("alert-%d", len(c.alerts)))
}

func (c *testCore) CreateTag(b *command.CreateTag) dispatch.Outcome {
	cp := *b
	cp.Resources = command.ResourceRefs{}
	cp.Resources.Items = append([]command.ResourceRef(nil), b.Resources.Items...)
	c.tags = append(c.tags, cp)
	return dispatch.Created(fmt.Sprintf("tag-%d", len(c.tags)))
}

func (c *testCore) GetAlerts(b *command.GetAlerts) dispatch.Outcome {
	var rows []any
	for i, alert := range c.alerts {
		id := fmt.Sprintf("alert-%d", i+1)
		if b.ID != "" && b.ID != id {
			continue
		}
		rows = append(rows, gmp.Alert{
			ID: id, Name: alert.Name,
			Condition: alert.Condition, Event: alert.Event, Method: alert.Method,
		})
	}
	return dispatch.Rows(&response.SliceCursor{Rows: rows})
}

func (c *testCore) GetTasks(b *command.GetTasks) dispatch.Outcome {
	if c.getTasks != nil {
		return c.getTasks(b)
	}
	rows := make([]any, len(c.tasks))
	for i, task := range c.tasks {
		rows[i] = gmp.Task{ID: fmt.Sprintf("task-%d", i+1), Name: task.Name, Status: "New"}
	}
	return dispatch.Rows(&response.SliceCursor{Rows: rows})
}

func (c *testCore) GetTargets(b *command.GetTargets) dispatch.Outcome {
	var rows []any
	for i, tgt := range c.targets {
		id := fmt.Sprintf("target-%d", i+1)
		if b.ID != "" && b.ID != id {
			continue
		}
		rows = append(rows, gmp.Target{ID: id, Name: tgt.Name, Hosts: tgt.Hosts, Comment: tgt.Comment})
	}
	return dispatch.Rows(&response.SliceCursor{Rows: rows})
}

func (c *testCore) DeleteTarget(b *command.DeleteTarget) dispatch.Outcome {
	return dispatch.NotFound("target", b.ID)
}

func (c *testCore) DeleteTask(*command.DeleteTask) dispatch.Outcome { return dispatch.OK() }

func quietLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newSession(core dispatch.Core, sink io.Writer, opts ...Option) *Session {
	return New(core, sink, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

// feed runs one session over the document and returns the emitted
// responses.
func feed(t *testing.T, core dispatch.Core, doc string, opts ...Option) string {
	t.Helper()
	var sink bytes.Buffer
	s := newSession(core, &sink, opts...)
	require.NoError(t, s.Run(context.Background(), strings.NewReader(doc)))
	return sink.String()
}

// authFeed authenticates first, then runs the document.
func authFeed(t *testing.T, core dispatch.Core, doc string, opts ...Option) string {
	t.Helper()
	out := feed(t, core, authDoc+doc, opts...)
	resp := strings.TrimPrefix(out, `<authenticate_response status="200" status_text="OK"/>`)
	require.NotEqual(t, out, resp, "authentication must succeed first: %s", out)
	return resp
}

const authDoc = `<authenticate><credentials><username>admin</username><password>secret</password></credentials></authenticate>`

func parseResponses(t *testing.T, out string) []*xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader("<top>" + out + "</top>"))
	require.NoError(t, err)
	return xmlquery.Find(doc, "/top/*")
}

func TestAuthenticateSuccess(t *testing.T) {
	ck := assert.New(t)
	var sink bytes.Buffer
	s := newSession(newTestCore(), &sink)

	require.NoError(t, s.Run(context.Background(), strings.NewReader(authDoc)))
	ck.Equal(`<authenticate_response status="200" status_text="OK"/>`, sink.String())
	ck.True(s.Authenticated())
}

func TestAuthenticateFailure(t *testing.T) {
	ck := assert.New(t)
	var sink bytes.Buffer
	s := newSession(newTestCore(), &sink)

	doc := `<authenticate><credentials><username>admin</username><password>wrong</password></credentials></authenticate>`
	require.NoError(t, s.Run(context.Background(), strings.NewReader(doc)))
	ck.Equal(`<authenticate_response status="400" status_text="Authentication failed"/>`, sink.String())
	ck.False(s.Authenticated())
}

func TestPreAuthGate(t *testing.T) {
	for _, doc := range []string{
		`<create_target><name>t</name><hosts>h</hosts></create_target>`,
		`<get_tasks/>`,
		`<delete_target target_id="x"/>`,
		`<CREATE_TASK><name>case folded</name></CREATE_TASK>`,
	} {
		t.Run(doc, func(t *testing.T) {
			ck := assert.New(t)
			core := newTestCore()
			var sink bytes.Buffer
			s := newSession(core, &sink)
			require.NoError(t, s.Run(context.Background(), strings.NewReader(doc)))

			resps := parseResponses(t, sink.String())
			require.Len(t, resps, 1)
			ck.Equal(gmp.StatusSyntax, resps[0].SelectAttr("status"))
			ck.Equal(gmp.TextAuthRequired, resps[0].SelectAttr("status_text"))
			ck.False(s.Authenticated())
			ck.Empty(core.targets, "gated commands must never reach the core")

			// the session is still usable: authentication now succeeds
			require.NoError(t, s.Run(context.Background(), strings.NewReader(authDoc)))
			ck.True(s.Authenticated())
		})
	}
}

func TestGetVersionPreAuth(t *testing.T) {
	out := feed(t, newTestCore(), `<get_version/>`)
	assert.New(t).Equal(
		`<get_version_response status="200" status_text="OK"><version>22.4</version></get_version_response>`,
		out)
}

func TestCreateTargetScenario(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core, `<create_target><name>t1</name><hosts>10.0.0.1</hosts></create_target>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal("create_target_response", resps[0].Data)
	ck.Equal(gmp.StatusCreated, resps[0].SelectAttr("status"))
	ck.Equal("target-1", resps[0].SelectAttr("id"))

	require.Len(t, core.targets, 1)
	ck.Equal("t1", core.targets[0].Name)
	ck.Equal("10.0.0.1", core.targets[0].Hosts)
}

func TestCreateGetRoundTrip(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core,
		`<create_target><name>web</name><comment>dmz</comment><hosts>10.0.0.0/24</hosts></create_target>`+
			`<get_targets target_id="target-1"/>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 2)
	tgt := xmlquery.FindOne(resps[1], "target")
	require.NotNil(t, tgt)
	ck.Equal("web", xmlquery.FindOne(tgt, "name").InnerText())
	ck.Equal("dmz", xmlquery.FindOne(tgt, "comment").InnerText())
	ck.Equal("10.0.0.0/24", xmlquery.FindOne(tgt, "hosts").InnerText())
}

func TestCreateTaskCollections(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	authFeed(t, core, `<create_task>`+
		`<name>scan</name>`+
		`<target id="target-1"/>`+
		`<alert id="alert-1"/><alert id="alert-2"/>`+
		`<preferences>`+
		`<preference><scanner_name>max_hosts</scanner_name><value>20</value></preference>`+
		`<preference><scanner_name>max_checks</scanner_name><value>4</value></preference>`+
		`</preferences>`+
		`</create_task>`)

	require.Len(t, core.tasks, 1)
	task := core.tasks[0]
	ck.Equal("scan", task.Name)
	ck.Equal("target-1", task.TargetID)
	ck.Equal([]command.ResourceRef{{ID: "alert-1"}, {ID: "alert-2"}}, task.Alerts)
	ck.True(task.Preferences.Terminated())
	ck.Equal([]command.NameValue{{Name: "max_hosts", Value: "20"}, {Name: "max_checks", Value: "4"}}, task.Preferences.Items)
}

func TestCreateAlertMixedContent(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	authFeed(t, core, `<create_alert>`+
		`<name>sev</name>`+
		`<condition>Severity at least<data>5.5<name>severity</name></data></condition>`+
		`<event>Task run status changed<data>Done<name>status</name></data></event>`+
		`<method>Email<data>admin@example.org<name>to_address</name></data></method>`+
		`</create_alert>`)

	require.Len(t, core.alerts, 1)
	alert := core.alerts[0]
	ck.Equal("Severity at least", alert.Condition)
	ck.Equal([]command.NameValue{{Name: "severity", Value: "5.5"}}, alert.ConditionData.Items)
	ck.Equal([]command.NameValue{{Name: "status", Value: "Done"}}, alert.EventData.Items)
	ck.Equal([]command.NameValue{{Name: "to_address", Value: "admin@example.org"}}, alert.MethodData.Items)
}

func TestCreateGetAlertRoundTrip(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core, `<create_alert>`+
		`<name>sev</name>`+
		`<condition>Always</condition>`+
		`<event>Task run status changed</event>`+
		`<method>Email</method>`+
		`</create_alert>`+
		`<get_alerts alert_id="alert-1"/>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 2)
	ck.Equal("get_alerts_response", resps[1].Data)
	ck.Equal(gmp.StatusOK, resps[1].SelectAttr("status"))
	alert := xmlquery.FindOne(resps[1], "alert")
	require.NotNil(t, alert)
	ck.Equal("alert-1", alert.SelectAttr("id"))
	ck.Equal("sev", xmlquery.FindOne(alert, "name").InnerText())
	ck.Equal("Email", xmlquery.FindOne(alert, "method").InnerText())
}

func TestCreateTagResources(t *testing.T) {
	for _, tc := range []struct {
		name      string
		resources string
		want      []command.ResourceRef
	}{
		{
			name:      "attribute form",
			resources: `<resource id="r1"/><resource id="r2"/>`,
			want:      []command.ResourceRef{{ID: "r1"}, {ID: "r2"}},
		},
		{
			name:      "element form",
			resources: `<resource><id>e1</id></resource>`,
			want:      []command.ResourceRef{{ID: "e1"}},
		},
		{
			name:      "element form wins over the attribute",
			resources: `<resource id="attr-id"><id>elem-id</id></resource>`,
			want:      []command.ResourceRef{{ID: "elem-id"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ck := assert.New(t)
			core := newTestCore()
			out := authFeed(t, core, `<create_tag>`+
				`<name>env:prod</name>`+
				`<resources><type>target</type>`+tc.resources+`</resources>`+
				`</create_tag>`)

			resps := parseResponses(t, out)
			require.Len(t, resps, 1)
			ck.Equal(gmp.StatusCreated, resps[0].SelectAttr("status"))
			require.Len(t, core.tags, 1)
			tag := core.tags[0]
			ck.Equal("env:prod", tag.Name)
			ck.Equal("target", tag.ResourcesType)
			ck.Equal(tc.want, tag.Resources.Items)
		})
	}
}

func TestCreateTagRepeatedResourcesBlocks(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core, `<create_tag>`+
		`<name>env:prod</name>`+
		`<resources><resource id="r1"/></resources>`+
		`<resources><resource id="r2"/><resource id="r3"/></resources>`+
		`</create_tag>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal(gmp.StatusCreated, resps[0].SelectAttr("status"))
	require.Len(t, core.tags, 1)
	// the first block's end tag seals the list
	ck.Equal([]command.ResourceRef{{ID: "r1"}}, core.tags[0].Resources.Items)
}

func TestBuilderDoesNotLeakBetweenCommands(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	authFeed(t, core,
		`<create_target><name>first</name><comment>keep out</comment><hosts>a</hosts></create_target>`+
			`<create_target><name>second</name><hosts>b</hosts></create_target>`)

	require.Len(t, core.targets, 2)
	ck.Equal("keep out", core.targets[0].Comment)
	ck.Empty(core.targets[1].Comment, "a later command must not see an earlier command's fields")
}

func TestUnknownElementInsideCommand(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core, `<create_target>`+
		`<name>t1</name>`+
		`<future_feature><deep><deeper>zzz</deeper></deep></future_feature>`+
		`<hosts>10.0.0.1</hosts>`+
		`</create_target>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 1, "the unknown subtree must not produce a response: %s", out)
	ck.Equal(gmp.StatusCreated, resps[0].SelectAttr("status"))
	require.Len(t, core.targets, 1)
	ck.Equal("10.0.0.1", core.targets[0].Hosts, "parsing must resume after the skipped subtree")
}

func TestSkipIdempotentAtAnyDepth(t *testing.T) {
	core := newTestCore()
	for depth := 0; depth <= 50; depth++ {
		t.Run(fmt.Sprintf("depth_%d", depth), func(t *testing.T) {
			var unknown strings.Builder
			for i := 0; i < depth; i++ {
				fmt.Fprintf(&unknown, "<u%d>", i)
			}
			unknown.WriteString("text")
			for i := depth - 1; i >= 0; i-- {
				fmt.Fprintf(&unknown, "</u%d>", i)
			}
			doc := `<create_target><name>n</name><future>` + unknown.String() + `</future><hosts>h</hosts></create_target>`
			out := authFeed(t, core, doc)
			resps := parseResponses(t, out)
			require.Len(t, resps, 1)
			assert.New(t).Equal(gmp.StatusCreated, resps[0].SelectAttr("status"))
		})
	}
}

func TestBogusCommandName(t *testing.T) {
	ck := assert.New(t)
	out := authFeed(t, newTestCore(), `<frobnicate><x/></frobnicate>`)
	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal("frobnicate_response", resps[0].Data)
	ck.Equal(gmp.StatusSyntax, resps[0].SelectAttr("status"))
	ck.Equal(gmp.TextBogusCommand, resps[0].SelectAttr("status_text"))
}

func TestGetTasksFlagContracts(t *testing.T) {
	for _, tc := range []struct {
		doc            string
		details        bool
		applyOverrides bool
	}{
		{`<get_tasks/>`, false, true},
		{`<get_tasks details="1" apply_overrides="0"/>`, true, false},
		{`<get_tasks details="0" apply_overrides="1"/>`, false, true},
	} {
		t.Run(tc.doc, func(t *testing.T) {
			ck := assert.New(t)
			core := newTestCore()
			var got command.GetTasks
			core.getTasks = func(b *command.GetTasks) dispatch.Outcome {
				got = *b
				return dispatch.Rows(&response.SliceCursor{})
			}
			authFeed(t, core, tc.doc)
			ck.Equal(tc.details, got.Details)
			ck.Equal(tc.applyOverrides, got.ApplyOverrides)
		})
	}
}

func TestDisabledCommand(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	core.getTasks = func(*command.GetTasks) dispatch.Outcome {
		t.Fatal("disabled command must never reach the core")
		return dispatch.OK()
	}
	out := authFeed(t, core, `<get_tasks/>`, WithDisabledCommands("get_tasks"))

	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal(gmp.StatusServiceUnavailable, resps[0].SelectAttr("status"))
	ck.Equal(gmp.TextCommandDisabled, resps[0].SelectAttr("status_text"))
}

// chunkReader returns at most n bytes per Read call.
type chunkReader struct {
	data []byte
	n    func() int
}

func (r *chunkReader) Read(b []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.n()
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(b) {
		n = len(b)
	}
	copy(b, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestChunkingInvariance(t *testing.T) {
	doc := authDoc +
		`<create_target><name>t&amp;1</name><hosts>10.0.0.1</hosts></create_target>` +
		`<future_feature><a><b/></a></future_feature>` +
		`<get_targets/>` +
		`<delete_task task_id="task-9"/>`

	run := func(r io.Reader) string {
		var sink bytes.Buffer
		s := newSession(newTestCore(), &sink)
		require.NoError(t, s.Run(context.Background(), r))
		return sink.String()
	}

	whole := run(strings.NewReader(doc))
	byByte := run(&chunkReader{data: []byte(doc), n: func() int { return 1 }})

	rng := rand.New(rand.NewSource(1))
	random := run(&chunkReader{data: []byte(doc), n: func() int { return 1 + rng.Intn(17) }})

	ck := assert.New(t)
	ck.Equal(whole, byByte, "1-byte chunking must not change the responses")
	ck.Equal(whole, random, "random chunking must not change the responses")
}

func TestStreamedGetTasks(t *testing.T) {
	ck := assert.New(t)
	const n = 10000
	rows := make([]any, n)
	for i := range rows {
		rows[i] = gmp.Task{ID: fmt.Sprintf("task-%d", i), Name: "scan", Status: "New"}
	}
	core := newTestCore()
	cur := &response.SliceCursor{Rows: rows}
	core.getTasks = func(*command.GetTasks) dispatch.Outcome { return dispatch.Rows(cur) }

	var sink bytes.Buffer
	s := newSession(core, &sink)
	require.NoError(t, s.Run(context.Background(), strings.NewReader(authDoc+`<get_tasks/>`)))
	ck.True(cur.Closed())

	doc, err := xmlquery.Parse(strings.NewReader("<top>" + sink.String() + "</top>"))
	require.NoError(t, err)
	ck.Len(xmlquery.Find(doc, "//get_tasks_response/task"), n)
}

func TestMalformedStreamIsFatal(t *testing.T) {
	ck := assert.New(t)
	var sink bytes.Buffer
	s := newSession(newTestCore(), &sink)

	err := s.Run(context.Background(), strings.NewReader(authDoc+`<get_tasks attr=></get_tasks`))
	ck.Error(err)
	// exactly the responses emitted before the malformation, nothing after
	ck.Equal(`<authenticate_response status="200" status_text="OK"/>`, sink.String())
}

func TestEOFMidCommand(t *testing.T) {
	var sink bytes.Buffer
	s := newSession(newTestCore(), &sink)
	err := s.Run(context.Background(), strings.NewReader(`<create_target><name>t`))
	assert.New(t).Error(err)
}

func TestRunSubIsolation(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	var sink bytes.Buffer
	s := newSession(core, &sink)
	require.NoError(t, s.Run(context.Background(), strings.NewReader(authDoc)))

	captured, err := s.RunSub(context.Background(),
		`<create_target><name>inner</name><hosts>h</hosts></create_target>`)
	require.NoError(t, err)
	ck.Contains(string(captured), `status="201"`)
	ck.True(s.Authenticated())

	// nothing from the inner run reached the outer sink
	ck.Equal(`<authenticate_response status="200" status_text="OK"/>`, sink.String())

	// the outer session keeps working afterwards
	sink.Reset()
	require.NoError(t, s.Run(context.Background(), strings.NewReader(`<get_version/>`)))
	ck.Contains(sink.String(), "get_version_response")
}

func TestRunWizardPlayback(t *testing.T) {
	ck := assert.New(t)
	core := newTestCore()
	out := authFeed(t, core, `<run_wizard>`+
		`<name>quick_first_scan</name>`+
		`<params><param><name>hosts</name><value>10.0.0.7</value></param></params>`+
		`</run_wizard>`)

	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal("run_wizard_response", resps[0].Data)
	ck.Equal(gmp.StatusOK, resps[0].SelectAttr("status"))

	// the wizard created a target and a task through the same engine
	require.Len(t, core.targets, 1)
	ck.Equal("10.0.0.7", core.targets[0].Hosts)
	require.Len(t, core.tasks, 1)
	ck.Equal("target-1", core.tasks[0].TargetID)

	// captured step responses are embedded in the wizard body
	ck.Len(xmlquery.Find(resps[0], "response/*"), 2)
}

func TestNotFoundResponse(t *testing.T) {
	ck := assert.New(t)
	out := authFeed(t, newTestCore(), `<delete_target target_id="missing"/>`)
	resps := parseResponses(t, out)
	require.Len(t, resps, 1)
	ck.Equal(gmp.StatusNotFound, resps[0].SelectAttr("status"))
	ck.Equal("Failed to find target 'missing'", resps[0].SelectAttr("status_text"))
}
