package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedGeo(t *testing.T, db *sql.DB) (india, kerala, kochi int64) {
	t.Helper()
	var err error
	india, err = InsertGeo(db, Countries, GeoRow{Name: "India"})
	require.NoError(t, err)
	kerala, err = InsertGeo(db, States, GeoRow{Name: "Kerala", CountryID: india})
	require.NoError(t, err)
	kochi, err = InsertGeo(db, Cities, GeoRow{Name: "Kochi", CountryID: india, StateID: kerala})
	require.NoError(t, err)
	return india, kerala, kochi
}

func TestInsertGeoAssignsCodesAndJoinsParents(t *testing.T) {
	db := openTest(t)
	india, kerala, kochi := seedGeo(t, db)

	c, err := GetGeo(db, Countries, india)
	require.NoError(t, err)
	assert.Equal(t, "country_00001", c.Code)
	assert.True(t, c.Active)

	city, err := GetGeo(db, Cities, kochi)
	require.NoError(t, err)
	assert.Equal(t, "city_00001", city.Code)
	assert.Equal(t, kerala, city.StateID)
	assert.Equal(t, "Kerala", city.StateName)
	assert.Equal(t, "India", city.CountryName)
}

func TestListGeoFilters(t *testing.T) {
	db := openTest(t)
	india, _, _ := seedGeo(t, db)
	japan, err := InsertGeo(db, Countries, GeoRow{Name: "Japan"})
	require.NoError(t, err)
	_, err = InsertGeo(db, States, GeoRow{Name: "Kyoto", CountryID: japan})
	require.NoError(t, err)
	_, err = InsertGeo(db, States, GeoRow{Name: "Goa", CountryID: india})
	require.NoError(t, err)

	rows, total, err := ListGeo(db, States, ListQuery{CountryID: india, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Goa", rows[0].Name)
	assert.Equal(t, "Kerala", rows[1].Name)

	rows, total, err = ListGeo(db, States, ListQuery{Search: "ky"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Japan", rows[0].CountryName)

	rows, total, err = ListGeo(db, Countries, ListQuery{SortBy: "id", SortDesc: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "total ignores paging")
	require.Len(t, rows, 1)
	assert.Equal(t, "Japan", rows[0].Name)

	rows, _, err = ListGeo(db, Countries, ListQuery{SortBy: "id", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, "Japan", rows[0].Name)
}

func TestSetGeoActive(t *testing.T) {
	db := openTest(t)
	india, _, _ := seedGeo(t, db)

	require.NoError(t, SetGeoActive(db, Countries, india, false))
	inactive := false
	active := true

	rows, _, err := ListGeo(db, Countries, ListQuery{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, _, err = ListGeo(db, Countries, ListQuery{Active: &inactive})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, SetGeoActive(db, Countries, india, true))
	rows, _, err = ListGeo(db, Countries, ListQuery{Active: &active})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.ErrorIs(t, SetGeoActive(db, Countries, 999, false), ErrNotFound)
}

func TestGeoNameTaken(t *testing.T) {
	db := openTest(t)
	india, kerala, kochi := seedGeo(t, db)

	taken, err := GeoNameTaken(db, Countries, GeoRow{Name: " india "}, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = GeoNameTaken(db, Countries, GeoRow{Name: "India"}, india)
	require.NoError(t, err)
	assert.False(t, taken, "the row itself does not count")

	taken, err = GeoNameTaken(db, Cities, GeoRow{Name: "Kochi", CountryID: india, StateID: kerala + 1}, 0)
	require.NoError(t, err)
	assert.False(t, taken, "same name under another state is allowed")

	require.NoError(t, UpdateGeo(db, Cities, GeoRow{ID: kochi, Name: "Cochin", CountryID: india, StateID: kerala}))
	city, err := GetGeo(db, Cities, kochi)
	require.NoError(t, err)
	assert.Equal(t, "Cochin", city.Name)

	assert.ErrorIs(t, UpdateGeo(db, Countries, GeoRow{ID: 404, Name: "x"}), ErrNotFound)
	_, err = GetGeo(db, States, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocuments(t *testing.T) {
	db := openTest(t)
	india, kerala, kochi := seedGeo(t, db)

	id, err := InsertDocument(db, Document{
		Kind:      KindPlace,
		Name:      "Fort Kochi Beach",
		CountryID: india,
		StateID:   kerala,
		CityID:    kochi,
		Body:      json.RawMessage(`{ "name": "Fort Kochi Beach", "rating": 4.5 }`),
		Active:    true,
	})
	require.NoError(t, err)
	_, err = InsertDocument(db, Document{Kind: KindRestaurant, Name: "Kashi", CityID: kochi, Active: true})
	require.NoError(t, err)

	docs, total, err := ListDocuments(db, KindPlace, ListQuery{CityID: kochi})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"name":"Fort Kochi Beach","rating":4.5}`, string(docs[0].Body))
	assert.Equal(t, kerala, docs[0].StateID)

	taken, err := DocumentNameTaken(db, Document{Kind: KindPlace, Name: "fort kochi beach", CityID: kochi}, 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = DocumentNameTaken(db, Document{Kind: KindRestaurant, Name: "Fort Kochi Beach", CityID: kochi}, 0)
	require.NoError(t, err)
	assert.False(t, taken, "names are unique per kind")

	require.NoError(t, UpdateDocument(db, Document{ID: id, Kind: KindPlace, Name: "Beach", CityID: kochi, Body: json.RawMessage(`{"name":"Beach"}`)}))
	got, err := GetDocument(db, KindPlace, id)
	require.NoError(t, err)
	assert.Equal(t, "Beach", got.Name)
	assert.Zero(t, got.StateID, "update replaces filter columns")

	require.NoError(t, SetDocumentActive(db, KindPlace, id, false))
	assert.ErrorIs(t, SetDocumentActive(db, KindRestaurant, id, false), ErrNotFound, "kind scopes the id")

	_, err = InsertDocument(db, Document{Kind: KindPlace, Name: "bad", Body: json.RawMessage(`[1]`)})
	assert.Error(t, err)
}

func TestListGeoQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM countries x`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT x.id, x.code, x.name`).
		WillReturnError(errors.New("disk I/O error"))

	_, _, err = ListGeo(db, Countries, ListQuery{})
	assert.ErrorContains(t, err, "failed to list countries: disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertGeoCodeFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO states`).
		WithArgs("Kerala", int64(1)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`UPDATE states SET code`).
		WithArgs("state_00007", int64(7)).
		WillReturnError(errors.New("locked"))

	_, err = InsertGeo(db, States, GeoRow{Name: "Kerala", CountryID: 1})
	assert.ErrorContains(t, err, "failed to assign state code")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDocumentActiveNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE documents SET is_active`).
		WithArgs(1, int64(5), KindHotel).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, SetDocumentActive(db, KindHotel, 5, true), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
