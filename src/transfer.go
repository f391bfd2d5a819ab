package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var errUnknownFormat = errors.New("unknown import format")

type exportedView struct {
	Name    string   `json:"Name"`
	Columns []string `json:"Columns"`
	Filter  string   `json:"Filter,omitempty"`
}

type exportFile struct {
	Entries []map[string]any `json:"entries"`
	Views   []exportedView   `json:"views,omitempty"`
}

// parseRows decodes either a bare array of row objects or an object of the
// form {"entries": [...], "views": [...]}. Views are nil when absent.
func parseRows(data []byte) ([]map[string]any, []View, error) {
	var j any
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, nil, err
	}

	switch j.(type) {
	case []any:
		var entries []map[string]any
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, nil, fmt.Errorf("decoding entries: %w", err)
		}
		return entries, nil, nil
	case map[string]any:
		var f struct {
			Entries []map[string]any `json:"entries"`
			Views   *[]exportedView  `json:"views"`
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, nil, fmt.Errorf("decoding export: %w", err)
		}
		var views []View
		if f.Views != nil {
			views = make([]View, 0, len(*f.Views))
			for _, v := range *f.Views {
				views = append(views, View{Name: v.Name, Columns: v.Columns, Filter: v.Filter})
			}
		}
		return f.Entries, views, nil
	}
	return nil, nil, errUnknownFormat
}

// readRowsFile reads and parses a JSON data file.
func readRowsFile(path string) ([]map[string]any, []View, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	rows, views, err := parseRows(b)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, views, nil
}

// exportRows encodes rows and views in the shape parseRows accepts.
func exportRows(rows []map[string]any, views []View) ([]byte, error) {
	out := exportFile{Entries: rows}
	for _, v := range views {
		out.Views = append(out.Views, exportedView{Name: v.Name, Columns: v.Columns, Filter: v.Filter})
	}
	if out.Entries == nil {
		out.Entries = []map[string]any{}
	}
	return json.MarshalIndent(out, "", "  ")
}
