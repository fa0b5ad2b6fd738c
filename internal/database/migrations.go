package database

// migrationsSQL holds all schema migrations keyed by version. Forward
// only; never edit an applied migration, add a new version instead.
var migrationsSQL = map[int]string{
	1: `
		CREATE TABLE user_profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			birth_time TEXT,
			birth_place TEXT,
			moon_sign TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`,
}
