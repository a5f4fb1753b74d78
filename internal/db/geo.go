package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// GeoLevel selects the countries, states or cities table.
type GeoLevel int

const (
	Countries GeoLevel = iota
	States
	Cities
)

type geoTable struct {
	table   string
	prefix  string
	columns string
	from    string
	filters map[string]bool
}

var geoTables = map[GeoLevel]geoTable{
	Countries: {
		table:   "countries",
		prefix:  "country",
		columns: "x.id, x.code, x.name, 0, 0, '', '', x.is_active, x.created_at",
		from:    "countries x",
		filters: map[string]bool{},
	},
	States: {
		table:   "states",
		prefix:  "state",
		columns: "x.id, x.code, x.name, x.country_id, 0, COALESCE(c.name, ''), '', x.is_active, x.created_at",
		from:    "states x LEFT JOIN countries c ON c.id = x.country_id",
		filters: map[string]bool{"country_id": true},
	},
	Cities: {
		table:   "cities",
		prefix:  "city",
		columns: "x.id, x.code, x.name, x.country_id, x.state_id, COALESCE(c.name, ''), COALESCE(s.name, ''), x.is_active, x.created_at",
		from:    "cities x LEFT JOIN states s ON s.id = x.state_id LEFT JOIN countries c ON c.id = x.country_id",
		filters: map[string]bool{"country_id": true, "state_id": true},
	},
}

// GeoRow is one country, state or city with its parents' names joined in.
type GeoRow struct {
	ID          int64
	Code        string
	Name        string
	CountryID   int64
	StateID     int64
	CountryName string
	StateName   string
	Active      bool
	CreatedAt   string
}

// ListGeo returns one page of rows and the total matching the filters.
func ListGeo(db *sql.DB, level GeoLevel, q ListQuery) ([]GeoRow, int, error) {
	t, ok := geoTables[level]
	if !ok {
		return nil, 0, fmt.Errorf("unknown geo level %d", level)
	}
	where, args := q.where(t.filters)

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM "+t.from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", t.table, err)
	}

	order, pageArgs := q.order()
	rows, err := db.Query("SELECT "+t.columns+" FROM "+t.from+where+order, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", t.table, err)
	}
	defer rows.Close()

	results := []GeoRow{}
	for rows.Next() {
		r, err := scanGeo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s row: %w", t.prefix, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating %s rows: %w", t.prefix, err)
	}
	return results, total, nil
}

// GetGeo returns one row by id.
func GetGeo(db *sql.DB, level GeoLevel, id int64) (GeoRow, error) {
	t, ok := geoTables[level]
	if !ok {
		return GeoRow{}, fmt.Errorf("unknown geo level %d", level)
	}
	row := db.QueryRow("SELECT "+t.columns+" FROM "+t.from+" WHERE x.id = ?", id)
	r, err := scanGeo(row)
	if err == sql.ErrNoRows {
		return GeoRow{}, ErrNotFound
	}
	if err != nil {
		return GeoRow{}, fmt.Errorf("failed to get %s: %w", t.prefix, err)
	}
	return r, nil
}

// GeoNameTaken reports whether another row under the same parent already
// uses name, ignoring case. excludeID skips the row being updated.
func GeoNameTaken(db *sql.DB, level GeoLevel, r GeoRow, excludeID int64) (bool, error) {
	t, ok := geoTables[level]
	if !ok {
		return false, fmt.Errorf("unknown geo level %d", level)
	}
	query := "SELECT COUNT(*) FROM " + t.table + " WHERE LOWER(name) = LOWER(?) AND id != ?"
	args := []any{strings.TrimSpace(r.Name), excludeID}
	if level >= States {
		query += " AND country_id = ?"
		args = append(args, r.CountryID)
	}
	if level >= Cities {
		query += " AND state_id = ?"
		args = append(args, r.StateID)
	}
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s name: %w", t.prefix, err)
	}
	return n > 0, nil
}

// InsertGeo creates a row, assigns its code and returns the new id.
func InsertGeo(db *sql.DB, level GeoLevel, r GeoRow) (int64, error) {
	t, ok := geoTables[level]
	if !ok {
		return 0, fmt.Errorf("unknown geo level %d", level)
	}

	var res sql.Result
	var err error
	switch level {
	case Countries:
		res, err = db.Exec(`INSERT INTO countries (name, is_active) VALUES (?, 1)`, r.Name)
	case States:
		res, err = db.Exec(`INSERT INTO states (name, country_id, is_active) VALUES (?, ?, 1)`, r.Name, r.CountryID)
	case Cities:
		res, err = db.Exec(`INSERT INTO cities (name, country_id, state_id, is_active) VALUES (?, ?, ?, 1)`, r.Name, r.CountryID, r.StateID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", t.prefix, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted %s id: %w", t.prefix, err)
	}

	code := fmt.Sprintf("%s_%05d", t.prefix, id)
	if _, err := db.Exec("UPDATE "+t.table+" SET code = ? WHERE id = ?", code, id); err != nil {
		return 0, fmt.Errorf("failed to assign %s code: %w", t.prefix, err)
	}
	return id, nil
}

// UpdateGeo renames a row and moves it under new parents.
func UpdateGeo(db *sql.DB, level GeoLevel, r GeoRow) error {
	t, ok := geoTables[level]
	if !ok {
		return fmt.Errorf("unknown geo level %d", level)
	}

	var res sql.Result
	var err error
	switch level {
	case Countries:
		res, err = db.Exec(`UPDATE countries SET name = ? WHERE id = ?`, r.Name, r.ID)
	case States:
		res, err = db.Exec(`UPDATE states SET name = ?, country_id = ? WHERE id = ?`, r.Name, r.CountryID, r.ID)
	case Cities:
		res, err = db.Exec(`UPDATE cities SET name = ?, country_id = ?, state_id = ? WHERE id = ?`, r.Name, r.CountryID, r.StateID, r.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", t.prefix, err)
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

// SetGeoActive soft deletes or restores a row.
func SetGeoActive(db *sql.DB, level GeoLevel, id int64, active bool) error {
	t, ok := geoTables[level]
	if !ok {
		return fmt.Errorf("unknown geo level %d", level)
	}
	return setActive(db, t.table, "", []any{id}, active)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeo(s scanner) (GeoRow, error) {
	var r GeoRow
	var active int
	if err := s.Scan(&r.ID, &r.Code, &r.Name, &r.CountryID, &r.StateID, &r.CountryName, &r.StateName, &active, &r.CreatedAt); err != nil {
		return GeoRow{}, err
	}
	r.Active = active == 1
	return r, nil
}
