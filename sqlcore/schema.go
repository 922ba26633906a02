package sqlcore

// Resources are soft-deleted first: trash=1 hides a row from listings
// until an ultimate delete removes it.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS targets (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	comment       TEXT NOT NULL DEFAULT '',
	hosts         TEXT NOT NULL,
	exclude_hosts TEXT NOT NULL DEFAULT '',
	port_range    TEXT NOT NULL DEFAULT '',
	alive_tests   TEXT NOT NULL DEFAULT '',
	ssh_cred_id   TEXT NOT NULL DEFAULT '',
	ssh_port      TEXT NOT NULL DEFAULT '',
	trash         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	comment     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'New',
	target_id   TEXT NOT NULL,
	config_id   TEXT NOT NULL DEFAULT '',
	scanner_id  TEXT NOT NULL DEFAULT '',
	schedule_id TEXT NOT NULL DEFAULT '',
	observers   TEXT NOT NULL DEFAULT '',
	trash       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS task_alerts (
	task_id  TEXT NOT NULL,
	alert_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS task_preferences (
	task_id  TEXT NOT NULL,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	value    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS alerts (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	comment   TEXT NOT NULL DEFAULT '',
	condition TEXT NOT NULL,
	event     TEXT NOT NULL,
	method    TEXT NOT NULL,
	filter_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS alert_data (
	alert_id TEXT NOT NULL,
	part     TEXT NOT NULL,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	value    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	comment       TEXT NOT NULL DEFAULT '',
	value         TEXT NOT NULL DEFAULT '',
	active        INTEGER NOT NULL DEFAULT 1,
	resource_type TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tag_resources (
	tag_id      TEXT NOT NULL,
	resource_id TEXT NOT NULL
);
`
