package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reminders (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT 'general',
	mode           TEXT NOT NULL,
	priority       INTEGER NOT NULL DEFAULT 2,
	due_at         DATETIME,
	window_start   TEXT NOT NULL DEFAULT '',
	window_end     TEXT NOT NULL DEFAULT '',
	period_minutes INTEGER NOT NULL DEFAULT 0,
	repeat_scope   TEXT NOT NULL DEFAULT '',
	sound_ref      TEXT NOT NULL DEFAULT '',
	last_fired_at  DATETIME,
	fired_count    INTEGER NOT NULL DEFAULT 0,
	is_completed   INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reminders_mode ON reminders(mode);
CREATE INDEX IF NOT EXISTS idx_reminders_completed ON reminders(is_completed);
CREATE INDEX IF NOT EXISTS idx_reminders_category ON reminders(category);
CREATE INDEX IF NOT EXISTS idx_reminders_created ON reminders(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
