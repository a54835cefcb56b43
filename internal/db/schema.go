package db

const Schema = `
CREATE TABLE IF NOT EXISTS timer_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timer_id TEXT NOT NULL,
    label TEXT NOT NULL,
    duration_ms INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT NOT NULL,
    outcome TEXT NOT NULL,
    alert_error TEXT
);
CREATE INDEX IF NOT EXISTS idx_timer_log_ended ON timer_log(ended_at);
`

func InitSchema(db *Database) error {
	_, err := db.conn.Exec(Schema)
	if err != nil {
		return err
	}
	return nil
}
