package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an update targets a missing row.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS countries (
    id         INTEGER PRIMARY KEY,
    code       TEXT NOT NULL DEFAULT '',
    name       TEXT NOT NULL,
    is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0,1)),
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS states (
    id         INTEGER PRIMARY KEY,
    code       TEXT NOT NULL DEFAULT '',
    name       TEXT NOT NULL,
    country_id INTEGER NOT NULL REFERENCES countries(id),
    is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0,1)),
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS cities (
    id         INTEGER PRIMARY KEY,
    code       TEXT NOT NULL DEFAULT '',
    name       TEXT NOT NULL,
    country_id INTEGER NOT NULL REFERENCES countries(id),
    state_id   INTEGER NOT NULL REFERENCES states(id),
    is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0,1)),
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS documents (
    id         INTEGER PRIMARY KEY,
    kind       TEXT NOT NULL,
    name       TEXT NOT NULL,
    country_id INTEGER,
    state_id   INTEGER,
    city_id    INTEGER,
    body       TEXT NOT NULL DEFAULT '{}',
    is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0,1)),
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_states_country_id ON states(country_id);
CREATE INDEX IF NOT EXISTS idx_cities_state_id ON cities(state_id);
CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind, is_active);
CREATE INDEX IF NOT EXISTS idx_documents_city_id ON documents(city_id);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// ListQuery filters, sorts and pages a list read. Zero ids and an empty
// search disable their filters; a nil Active returns both states.
type ListQuery struct {
	Active    *bool
	Search    string
	ID        int64
	CountryID int64
	StateID   int64
	CityID    int64
	SortBy    string
	SortDesc  bool
	Limit     int
	Offset    int
}

var sortColumns = map[string]string{
	"id":         "x.id",
	"name":       "x.name",
	"created_at": "x.created_at",
}

// where renders the filter clause for the columns a table has.
func (q ListQuery) where(filters map[string]bool) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if q.Active != nil {
		clause += " AND x.is_active = ?"
		args = append(args, boolInt(*q.Active))
	}
	if q.Search != "" {
		clause += " AND x.name LIKE '%' || ? || '%'"
		args = append(args, q.Search)
	}
	if q.ID > 0 {
		clause += " AND x.id = ?"
		args = append(args, q.ID)
	}
	for _, f := range []struct {
		col string
		val int64
	}{
		{"country_id", q.CountryID},
		{"state_id", q.StateID},
		{"city_id", q.CityID},
	} {
		if f.val > 0 && filters[f.col] {
			clause += " AND x." + f.col + " = ?"
			args = append(args, f.val)
		}
	}
	return clause, args
}

// order renders ORDER BY and LIMIT. Unknown sort keys fall back to
// created_at; ties break on id so pages are stable.
func (q ListQuery) order() (string, []any) {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns["created_at"]
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	clause := fmt.Sprintf(" ORDER BY %s %s, x.id %s", col, dir, dir)
	if q.Limit <= 0 {
		return clause, nil
	}
	return clause + " LIMIT ? OFFSET ?", []any{q.Limit, q.Offset}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func setActive(db *sql.DB, table string, extra string, args []any, active bool) error {
	query := "UPDATE " + table + " SET is_active = ? WHERE id = ?" + extra
	res, err := db.Exec(query, append([]any{boolInt(active)}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update %s status: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
