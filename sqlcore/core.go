package sqlcore

import (
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/dispatch"
	"github.com/greenbone/gvmd-sub000/gmp"
)

// Core implements dispatch.Core on a SQLite database.
type Core struct {
	db  *sql.DB
	log *logrus.Entry
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger the core reports internal failures to.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Core) { c.log = log }
}

// Open opens or creates the database at path and applies the schema.
// The returned Core serializes writes through a single connection, so
// one Core may back many sequential sessions.
func Open(path string, opts ...Option) (*Core, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema")
	}
	c := &Core{db: db, log: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying database.
func (c *Core) Close() error { return c.db.Close() }

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// EnsureUser creates the user or updates its password.
func (c *Core) EnsureUser(name, password string) error {
	_, err := c.db.Exec(`
		INSERT INTO users (id, name, password_hash) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET password_hash = excluded.password_hash`,
		uuid.NewString(), name, hashPassword(password))
	return errors.Wrapf(err, "ensuring user %q", name)
}

func (c *Core) Version() dispatch.Outcome {
	return dispatch.BodyOf(gmp.VersionBody{Value: gmp.Version})
}

func (c *Core) Authenticate(creds dispatch.Credentials) dispatch.Outcome {
	var hash string
	err := c.db.QueryRow(`SELECT password_hash FROM users WHERE name = ?`,
		creds.Username).Scan(&hash)
	switch {
	case err == sql.ErrNoRows:
		return dispatch.Invalid("unknown user")
	case err != nil:
		return dispatch.Fatal(errors.Wrap(err, "looking up user"))
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(hashPassword(creds.Password))) != 1 {
		return dispatch.Invalid("wrong password")
	}
	return dispatch.OK()
}

// nameTaken reports whether a live row in table already uses name.
func (c *Core) nameTaken(table, name string) (bool, error) {
	var n int
	err := c.db.QueryRow(
		`SELECT count(*) FROM `+table+` WHERE name = ? AND trash = 0`, name).Scan(&n)
	return n > 0, err
}

func (c *Core) CreateTarget(b *command.CreateTarget) dispatch.Outcome {
	taken, err := c.nameTaken("targets", b.Name)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "checking target name"))
	}
	if taken {
		return dispatch.Conflict("Target exists already")
	}
	id := uuid.NewString()
	_, err = c.db.Exec(`
		INSERT INTO targets (id, name, comment, hosts, exclude_hosts,
			port_range, alive_tests, ssh_cred_id, ssh_port)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, b.Name, b.Comment, b.Hosts, b.ExcludeHosts,
		b.PortRange, b.AliveTests, b.SSHCredentialID, b.SSHPort)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "inserting target"))
	}
	return dispatch.Created(id)
}

func (c *Core) CreateTask(b *command.CreateTask) dispatch.Outcome {
	var n int
	err := c.db.QueryRow(`SELECT count(*) FROM targets WHERE id = ? AND trash = 0`,
		b.TargetID).Scan(&n)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "checking target"))
	}
	if n == 0 {
		return dispatch.NotFound("target", b.TargetID)
	}

	id := uuid.NewString()
	_, err = c.db.Exec(`
		INSERT INTO tasks (id, name, comment, target_id, config_id,
			scanner_id, schedule_id, observers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, b.Name, b.Comment, b.TargetID, b.ConfigID,
		b.ScannerID, b.ScheduleID, b.Observers)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "inserting task"))
	}
	teardown := func() error {
		_, err := c.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
		return errors.Wrap(err, "removing provisional task")
	}

	// alert refs are linked after the task row exists; a bad ref
	// unwinds the provisional task through the teardown
	for _, ref := range b.Alerts {
		err := c.db.QueryRow(`SELECT count(*) FROM alerts WHERE id = ?`, ref.ID).Scan(&n)
		if err != nil {
			return dispatch.Fatal(errors.Wrap(err, "checking alert")).WithTeardown(teardown)
		}
		if n == 0 {
			return dispatch.NotFound("alert", ref.ID).WithTeardown(teardown)
		}
		if _, err := c.db.Exec(
			`INSERT INTO task_alerts (task_id, alert_id) VALUES (?, ?)`, id, ref.ID); err != nil {
			return dispatch.Fatal(errors.Wrap(err, "linking alert")).WithTeardown(teardown)
		}
	}
	for i, pref := range b.Preferences.Items {
		if _, err := c.db.Exec(`
			INSERT INTO task_preferences (task_id, position, name, value)
			VALUES (?, ?, ?, ?)`, id, i, pref.Name, pref.Value); err != nil {
			return dispatch.Fatal(errors.Wrap(err, "inserting preference")).WithTeardown(teardown)
		}
	}
	return dispatch.Created(id)
}

func (c *Core) CreateAlert(b *command.CreateAlert) dispatch.Outcome {
	id := uuid.NewString()
	_, err := c.db.Exec(`
		INSERT INTO alerts (id, name, comment, condition, event, method, filter_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, b.Name, b.Comment, b.Condition, b.Event, b.Method, b.FilterID)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "inserting alert"))
	}
	parts := []struct {
		part string
		data []command.NameValue
	}{
		{"condition", b.ConditionData.Items},
		{"event", b.EventData.Items},
		{"method", b.MethodData.Items},
	}
	for _, p := range parts {
		for i, d := range p.data {
			if _, err := c.db.Exec(`
				INSERT INTO alert_data (alert_id, part, position, name, value)
				VALUES (?, ?, ?, ?, ?)`, id, p.part, i, d.Name, d.Value); err != nil {
				return dispatch.Fatal(errors.Wrap(err, "inserting alert data"))
			}
		}
	}
	return dispatch.Created(id)
}

func (c *Core) CreateTag(b *command.CreateTag) dispatch.Outcome {
	id := uuid.NewString()
	active := 1
	if b.Active == "0" {
		active = 0
	}
	_, err := c.db.Exec(`
		INSERT INTO tags (id, name, comment, value, active, resource_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, b.Name, b.Comment, b.Value, active, b.ResourcesType)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "inserting tag"))
	}
	for _, ref := range b.Resources.Items {
		if _, err := c.db.Exec(
			`INSERT INTO tag_resources (tag_id, resource_id) VALUES (?, ?)`, id, ref.ID); err != nil {
			return dispatch.Fatal(errors.Wrap(err, "linking tag resource"))
		}
	}
	return dispatch.Created(id)
}

func (c *Core) GetTasks(b *command.GetTasks) dispatch.Outcome {
	// Detail rows must be collected up front: the core runs on one
	// connection, so a nested query would block behind the open cursor.
	var prefs map[string][]gmp.TaskPreference
	if b.Details {
		var err error
		if prefs, err = c.taskPreferences(); err != nil {
			return dispatch.Fatal(err)
		}
	}
	overrides := 0
	if b.ApplyOverrides {
		overrides = 1
	}

	q := `
		SELECT t.id, t.name, t.comment, t.status, t.target_id, g.name
		FROM tasks t LEFT JOIN targets g ON g.id = t.target_id
		WHERE t.trash = 0`
	args := []any{}
	if b.ID != "" {
		q += ` AND t.id = ?`
		args = append(args, b.ID)
	}
	if b.FilterString != "" {
		q += ` AND t.name LIKE ?`
		args = append(args, "%"+b.FilterString+"%")
	}
	q += ` ORDER BY t.name`
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "querying tasks"))
	}
	return dispatch.Rows(&rowsCursor{rows: rows, scan: func(rows *sql.Rows) (any, error) {
		row, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		t := row.(gmp.Task)
		t.ApplyOverrides = &overrides
		if b.Details {
			t.Preferences = prefs[t.ID]
		}
		return t, nil
	}})
}

// taskPreferences loads every live task's preferences keyed by task id.
func (c *Core) taskPreferences() (map[string][]gmp.TaskPreference, error) {
	rows, err := c.db.Query(`
		SELECT p.task_id, p.name, p.value FROM task_preferences p
		JOIN tasks t ON t.id = p.task_id AND t.trash = 0
		ORDER BY p.task_id, p.position`)
	if err != nil {
		return nil, errors.Wrap(err, "querying task preferences")
	}
	defer rows.Close()
	prefs := map[string][]gmp.TaskPreference{}
	for rows.Next() {
		var taskID string
		var p gmp.TaskPreference
		if err := rows.Scan(&taskID, &p.Name, &p.Value); err != nil {
			return nil, errors.Wrap(err, "reading task preference")
		}
		prefs[taskID] = append(prefs[taskID], p)
	}
	return prefs, errors.Wrap(rows.Err(), "reading task preferences")
}

func (c *Core) GetTargets(b *command.GetTargets) dispatch.Outcome {
	var taskRefs map[string][]gmp.Ref
	if b.Tasks {
		var err error
		if taskRefs, err = c.targetTasks(); err != nil {
			return dispatch.Fatal(err)
		}
	}

	q := `
		SELECT t.id, t.name, t.comment, t.hosts, t.exclude_hosts, t.port_range,
			(SELECT count(*) FROM tasks k WHERE k.target_id = t.id AND k.trash = 0)
		FROM targets t WHERE t.trash = 0`
	args := []any{}
	if b.ID != "" {
		q += ` AND t.id = ?`
		args = append(args, b.ID)
	}
	if b.FilterString != "" {
		q += ` AND t.name LIKE ?`
		args = append(args, "%"+b.FilterString+"%")
	}
	q += ` ORDER BY t.name`
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "querying targets"))
	}
	return dispatch.Rows(&rowsCursor{rows: rows, scan: func(rows *sql.Rows) (any, error) {
		row, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		t := row.(gmp.Target)
		if b.Tasks {
			t.Tasks = taskRefs[t.ID]
		}
		return t, nil
	}})
}

// targetTasks loads every live task reference keyed by target id.
func (c *Core) targetTasks() (map[string][]gmp.Ref, error) {
	rows, err := c.db.Query(`
		SELECT target_id, id, name FROM tasks
		WHERE trash = 0 ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying target tasks")
	}
	defer rows.Close()
	refs := map[string][]gmp.Ref{}
	for rows.Next() {
		var targetID string
		var r gmp.Ref
		if err := rows.Scan(&targetID, &r.ID, &r.Name); err != nil {
			return nil, errors.Wrap(err, "reading target task")
		}
		refs[targetID] = append(refs[targetID], r)
	}
	return refs, errors.Wrap(rows.Err(), "reading target tasks")
}

func (c *Core) GetAlerts(b *command.GetAlerts) dispatch.Outcome {
	q := `
		SELECT id, name, comment, condition, event, method
		FROM alerts WHERE 1 = 1`
	args := []any{}
	if b.ID != "" {
		q += ` AND id = ?`
		args = append(args, b.ID)
	}
	if b.FilterString != "" {
		q += ` AND name LIKE ?`
		args = append(args, "%"+b.FilterString+"%")
	}
	q += ` ORDER BY name`
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "querying alerts"))
	}
	return dispatch.Rows(&rowsCursor{rows: rows, scan: scanAlert})
}

func (c *Core) DeleteTarget(b *command.DeleteTarget) dispatch.Outcome {
	var inUse int
	err := c.db.QueryRow(`
		SELECT count(*) FROM tasks WHERE target_id = ? AND trash = 0`, b.ID).Scan(&inUse)
	if err != nil {
		return dispatch.Fatal(errors.Wrap(err, "checking target use"))
	}
	if inUse > 0 {
		return dispatch.Conflict("Target is in use")
	}
	return c.deleteResource("targets", "target", b.ID, b.Ultimate)
}

func (c *Core) DeleteTask(b *command.DeleteTask) dispatch.Outcome {
	out := c.deleteResource("tasks", "task", b.ID, b.Ultimate)
	if out.Kind == dispatch.KindOK && b.Ultimate {
		for _, q := range []string{
			`DELETE FROM task_alerts WHERE task_id = ?`,
			`DELETE FROM task_preferences WHERE task_id = ?`,
		} {
			if _, err := c.db.Exec(q, b.ID); err != nil {
				c.log.WithError(err).WithField("task", b.ID).
					Warn("task link cleanup failed")
			}
		}
	}
	return out
}

// deleteResource moves a row to the trashcan, or removes it entirely
// when ultimate is set. Ultimate deletion also empties a trashed row.
func (c *Core) deleteResource(table, kind, id string, ultimate bool) dispatch.Outcome {
	var res sql.Result
	var err error
	if ultimate {
		res, err = c.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	} else {
		res, err = c.db.Exec(`UPDATE `+table+` SET trash = 1 WHERE id = ? AND trash = 0`, id)
	}
	if err != nil {
		return dispatch.Fatal(errors.Wrapf(err, "deleting %s", kind))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dispatch.Fatal(errors.Wrapf(err, "deleting %s", kind))
	}
	if n == 0 {
		return dispatch.NotFound(kind, id)
	}
	return dispatch.OK()
}

func scanTask(rows *sql.Rows) (any, error) {
	var t gmp.Task
	var targetID, targetName sql.NullString
	if err := rows.Scan(&t.ID, &t.Name, &t.Comment, &t.Status, &targetID, &targetName); err != nil {
		return nil, err
	}
	if targetID.String != "" {
		t.Target = &gmp.Ref{ID: targetID.String, Name: targetName.String}
	}
	return t, nil
}

func scanAlert(rows *sql.Rows) (any, error) {
	var a gmp.Alert
	if err := rows.Scan(&a.ID, &a.Name, &a.Comment, &a.Condition, &a.Event, &a.Method); err != nil {
		return nil, err
	}
	return a, nil
}

func scanTarget(rows *sql.Rows) (any, error) {
	var t gmp.Target
	if err := rows.Scan(&t.ID, &t.Name, &t.Comment, &t.Hosts,
		&t.ExcludeHosts, &t.PortRange, &t.InUse); err != nil {
		return nil, err
	}
	return t, nil
}

// rowsCursor adapts sql.Rows to the streaming cursor the response
// encoder drains.
type rowsCursor struct {
	rows *sql.Rows
	scan func(*sql.Rows) (any, error)
}

func (c *rowsCursor) Next() (any, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, errors.Wrap(err, "reading result row")
		}
		return nil, io.EOF
	}
	return c.scan(c.rows)
}

func (c *rowsCursor) Close() error { return c.rows.Close() }
