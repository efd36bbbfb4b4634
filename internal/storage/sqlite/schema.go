package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS forecasts (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	date          TEXT NOT NULL,
	temperature_c INTEGER NOT NULL,
	summary       TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forecasts_date ON forecasts(date);
`

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
	selectColumns   = "id, date, temperature_c, summary, created_at, updated_at"
)
