package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/plusk0/filtertable/table"
)

const defaultConfigPath = "./config.yaml"

// Config describes the grid and where its rows come from. JSON files are
// accepted too since YAML is a superset.
type Config struct {
	// Columns in display order; when empty they are derived from the rows.
	Columns          []string `yaml:"columns"`
	Height           float32  `yaml:"height"`
	HeaderHeight     float32  `yaml:"header_height"`
	RowHeight        float32  `yaml:"row_height"`
	OverscanRowCount *int     `yaml:"overscan_row_count"`
	Striped          *bool    `yaml:"striped"`
	Filter           string   `yaml:"filter"`

	DBPath   string `yaml:"db"`
	DataFile string `yaml:"data"`

	WindowWidth  float32 `yaml:"window_width"`
	WindowHeight float32 `yaml:"window_height"`
}

func defaultConfig() Config {
	return Config{
		Height:       560,
		DBPath:       "./data.db",
		WindowWidth:  900,
		WindowHeight: 640,
	}
}

// loadConfig reads path over the defaults. A missing file at the default
// location is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == defaultConfigPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %s: height must be positive", path)
	}
	return cfg, nil
}

// tableOptions builds grid options for rows, restricted to columns when given.
func (c Config) tableOptions(rows []map[string]any, columns []string, filter string) table.Options {
	if len(columns) == 0 {
		columns = c.Columns
	}
	if len(columns) == 0 {
		columns = deriveColumns(rows)
	}
	return table.Options{
		Columns:          columns,
		Rows:             rows,
		Height:           c.Height,
		FilterText:       filter,
		HeaderHeight:     c.HeaderHeight,
		OverscanRowCount: c.OverscanRowCount,
		RowHeight:        c.RowHeight,
		Striped:          c.Striped,
	}
}

// deriveColumns returns the union of row keys in first-seen row order, keys
// within a row sorted.
func deriveColumns(rows []map[string]any) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range rows {
		keys := make([]string, 0, len(r))
		for k := range r {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
		}
		out = append(out, keys...)
	}
	// keep "ID" first when present, as the store attaches it
	if i := slices.Index(out, idKey); i > 0 {
		out = slices.Delete(out, i, i+1)
		out = slices.Insert(out, 0, idKey)
	}
	return out
}
