package store

// Money columns are TEXT holding decimal strings; REAL would reintroduce
// the float drift the decimal type exists to avoid.
const schema = `
CREATE TABLE IF NOT EXISTS game_state (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	campaign_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS banks (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	balance       TEXT NOT NULL DEFAULT '0',
	interest_rate TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS economic_activities (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	amount  TEXT NOT NULL,
	cadence TEXT NOT NULL,
	bank_id TEXT REFERENCES banks(id)
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	amount  TEXT NOT NULL,
	cadence TEXT NOT NULL,
	bank_id TEXT REFERENCES banks(id)
);

CREATE TABLE IF NOT EXISTS follower_objectives (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	status                TEXT NOT NULL DEFAULT 'NOT_STARTED',
	progress              TEXT NOT NULL DEFAULT '0',
	estimated_months      TEXT NOT NULL,
	base_estimated_months TEXT NOT NULL,
	total_cost            TEXT NOT NULL,
	bank_id               TEXT REFERENCES banks(id),
	start_date            TEXT
);

CREATE TABLE IF NOT EXISTS follower_objective_events (
	id           TEXT PRIMARY KEY,
	objective_id TEXT NOT NULL REFERENCES follower_objectives(id),
	description  TEXT NOT NULL,
	options      TEXT NOT NULL,
	chosen       TEXT,
	handled      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_objectives_status ON follower_objectives(status);
CREATE INDEX IF NOT EXISTS idx_events_handled ON follower_objective_events(handled);
`
