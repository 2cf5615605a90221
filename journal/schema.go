package journal

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	id      TEXT PRIMARY KEY,
	time    DATETIME NOT NULL,
	date    TEXT NOT NULL,
	kind    TEXT NOT NULL,
	subject TEXT NOT NULL,
	amount  TEXT NOT NULL DEFAULT '0',
	message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_date ON journal(date);
CREATE INDEX IF NOT EXISTS idx_journal_kind ON journal(kind);
`
