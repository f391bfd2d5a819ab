package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"maps"

	_ "github.com/mattn/go-sqlite3"
)

// idKey is the field the store attaches to every row it returns.
const idKey = "ID"

// View is a saved grid configuration: an ordered column subset and a filter.
type View struct {
	ID      int
	Name    string
	Columns []string
	Filter  string
}

type viewData struct {
	Columns []string `json:"columns"`
	Filter  string   `json:"filter,omitempty"`
}

// Store keeps rows as JSON blobs and saved views in SQLite.
type Store struct {
	db *sql.DB
}

// openStore creates/opens the sqlite database and ensures required tables exist.
func openStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			data TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			data TEXT
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// insertRow inserts a row json blob and returns inserted id
func (s *Store) insertRow(data map[string]any) (int64, error) {
	return insertRowTx(s.db, data)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertRowTx(ex execer, data map[string]any) (int64, error) {
	js, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("encoding row: %w", err)
	}
	res, err := ex.Exec("INSERT INTO entries (data) VALUES (?)", string(js))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// allRows returns every row in insertion order with its ID attached.
func (s *Store) allRows() ([]map[string]any, error) {
	rows, err := s.db.Query("SELECT id, data FROM entries ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var id int
		var dataStr string
		if err := rows.Scan(&id, &dataStr); err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(dataStr), &m); err != nil {
			// keep the raw text visible rather than dropping the row
			m = map[string]any{"_raw": dataStr}
		}
		out = append(out, attachID(id, m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// replaceAll swaps the stored rows for rows, and the stored views for views
// when views is non-nil, in one transaction.
func (s *Store) replaceAll(rows []map[string]any, views []View) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	for _, r := range rows {
		if _, err := insertRowTx(tx, stripID(r)); err != nil {
			return fmt.Errorf("importing row: %w", err)
		}
	}
	if views != nil {
		if _, err := tx.Exec("DELETE FROM views"); err != nil {
			return fmt.Errorf("clearing views: %w", err)
		}
		for _, v := range views {
			if _, err := insertViewTx(tx, v); err != nil {
				return fmt.Errorf("importing view %q: %w", v.Name, err)
			}
		}
	}
	return tx.Commit()
}

// attachID returns a copy of data with the ID field included
func attachID(id int, data map[string]any) map[string]any {
	m := maps.Clone(data)
	if m == nil {
		m = map[string]any{}
	}
	m[idKey] = id
	return m
}

// stripID drops an exported ID so re-imported rows get fresh ids.
func stripID(data map[string]any) map[string]any {
	if _, ok := data[idKey]; !ok {
		return data
	}
	m := maps.Clone(data)
	delete(m, idKey)
	return m
}

// --- Views management --- //

// getAllViews returns all stored views (does not include implicit "All" view)
func (s *Store) getAllViews() ([]View, error) {
	rows, err := s.db.Query("SELECT id, name, data FROM views ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		var v View
		var dataStr string
		if err := rows.Scan(&v.ID, &v.Name, &dataStr); err != nil {
			return nil, err
		}
		var d viewData
		if err := json.Unmarshal([]byte(dataStr), &d); err != nil {
			// older views stored a bare column array
			_ = json.Unmarshal([]byte(dataStr), &d.Columns)
		}
		v.Columns, v.Filter = d.Columns, d.Filter
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// insertView creates a new view entry and returns its id
func (s *Store) insertView(v View) (int64, error) {
	return insertViewTx(s.db, v)
}

func insertViewTx(ex execer, v View) (int64, error) {
	js, err := json.Marshal(viewData{Columns: v.Columns, Filter: v.Filter})
	if err != nil {
		return 0, err
	}
	res, err := ex.Exec("INSERT INTO views (name, data) VALUES (?, ?)", v.Name, string(js))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// updateView updates an existing view
func (s *Store) updateView(v View) error {
	js, err := json.Marshal(viewData{Columns: v.Columns, Filter: v.Filter})
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE views SET name = ?, data = ? WHERE id = ?", v.Name, string(js), v.ID)
	return err
}

// deleteView deletes a single view by id
func (s *Store) deleteView(id int) error {
	_, err := s.db.Exec("DELETE FROM views WHERE id = ?", id)
	return err
}
