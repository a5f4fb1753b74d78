package db

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Document kinds stored in the documents table.
const (
	KindPlace      = "place"
	KindRestaurant = "restaurant"
	KindFood       = "food"
	KindHotel      = "hotel"
	KindItinerary  = "itinerary"
)

var documentFilters = map[string]bool{"country_id": true, "state_id": true, "city_id": true}

// Document is a place, restaurant or browse-only record. Body holds the
// record as the dashboard sent it; the columns hold what lists filter on.
type Document struct {
	ID        int64
	Kind      string
	Name      string
	CountryID int64
	StateID   int64
	CityID    int64
	Body      json.RawMessage
	Active    bool
	CreatedAt string
}

// ListDocuments returns one page of documents of kind and the total.
func ListDocuments(db *sql.DB, kind string, q ListQuery) ([]Document, int, error) {
	where, args := q.where(documentFilters)
	where += " AND x.kind = ?"
	args = append(args, kind)

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents x"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s documents: %w", kind, err)
	}

	order, pageArgs := q.order()
	query := `SELECT x.id, x.kind, x.name, COALESCE(x.country_id, 0), COALESCE(x.state_id, 0), COALESCE(x.city_id, 0), x.body, x.is_active, x.created_at FROM documents x` + where + order
	rows, err := db.Query(query, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}
	defer rows.Close()

	results := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s document: %w", kind, err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating %s documents: %w", kind, err)
	}
	return results, total, nil
}

// GetDocument returns one document by id.
func GetDocument(db *sql.DB, kind string, id int64) (Document, error) {
	row := db.QueryRow(`
		SELECT id, kind, name, COALESCE(country_id, 0), COALESCE(state_id, 0), COALESCE(city_id, 0), body, is_active, created_at
		FROM documents
		WHERE kind = ? AND id = ?
	`, kind, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return d, nil
}

// DocumentNameTaken reports whether another document of the same kind in
// the same city already uses name, ignoring case.
func DocumentNameTaken(db *sql.DB, d Document, excludeID int64) (bool, error) {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM documents
		WHERE kind = ? AND LOWER(name) = LOWER(?) AND COALESCE(city_id, 0) = ? AND id != ?
	`, d.Kind, strings.TrimSpace(d.Name), d.CityID, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check %s name: %w", d.Kind, err)
	}
	return n > 0, nil
}

// InsertDocument stores a new document and returns its id.
func InsertDocument(db *sql.DB, d Document) (int64, error) {
	body, err := compact(d.Body)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`
		INSERT INTO documents (kind, name, country_id, state_id, city_id, body, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.Kind, d.Name, nullID(d.CountryID), nullID(d.StateID), nullID(d.CityID), body, boolInt(d.Active))
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", d.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted %s id: %w", d.Kind, err)
	}
	return id, nil
}

// UpdateDocument replaces a document's body and filter columns.
func UpdateDocument(db *sql.DB, d Document) error {
	body, err := compact(d.Body)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
		UPDATE documents SET name = ?, country_id = ?, state_id = ?, city_id = ?, body = ?
		WHERE kind = ? AND id = ?
	`, d.Name, nullID(d.CountryID), nullID(d.StateID), nullID(d.CityID), body, d.Kind, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", d.Kind, err)
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

// SetDocumentActive soft deletes or restores a document.
func SetDocumentActive(db *sql.DB, kind string, id int64, active bool) error {
	return setActive(db, "documents", " AND kind = ?", []any{id, kind}, active)
}

func scanDocument(s scanner) (Document, error) {
	var d Document
	var body string
	var active int
	if err := s.Scan(&d.ID, &d.Kind, &d.Name, &d.CountryID, &d.StateID, &d.CityID, &body, &active, &d.CreatedAt); err != nil {
		return Document{}, err
	}
	d.Body = json.RawMessage(body)
	d.Active = active == 1
	return d, nil
}

func compact(body json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "{}", nil
	}
	if trimmed[0] != '{' {
		return "", errors.New("document body must be a JSON object")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", fmt.Errorf("invalid document body: %w", err)
	}
	return buf.String(), nil
}

func nullID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
