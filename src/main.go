package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plusk0/filtertable/table"
)

var (
	configPath string
	dbPath     string
	dataFile   string
	verbose    bool

	logger *zap.Logger
)

// rootCmd opens the grid window
var rootCmd = &cobra.Command{
	Use:   "filtertable",
	Short: "Browse rows in a filterable, sortable table",
	Long: `filtertable shows rows from a SQLite store, or from a JSON data file that is
imported into the store and reloaded whenever it changes on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

// dumpCmd prints the grid as text
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the filtered, sorted rows as a text table",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

// importCmd loads a JSON data file into the store
var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Replace the stored rows with the contents of a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	dumpFilter string
	dumpSort   string
	dumpDesc   bool
	dumpOffset float32
	dumpAll    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "JSON data file to import and watch (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	dumpCmd.Flags().StringVarP(&dumpFilter, "filter", "f", "", "filter text")
	dumpCmd.Flags().StringVarP(&dumpSort, "sort", "s", "", "column to sort by")
	dumpCmd.Flags().BoolVar(&dumpDesc, "desc", false, "sort descending")
	dumpCmd.Flags().Float32Var(&dumpOffset, "offset", 0, "scroll offset in pixels; only the rows visible there are printed")
	dumpCmd.Flags().BoolVar(&dumpAll, "all", false, "print every row instead of one viewport")

	rootCmd.AddCommand(dumpCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config, applies flag overrides and opens the store,
// importing the data file when one is configured.
func setup() (Config, *Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	logger.Debug("loaded config", zap.Any("config", cfg))

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return cfg, nil, err
	}
	if cfg.DataFile != "" {
		if err := importFile(store, cfg.DataFile); err != nil {
			store.Close()
			return cfg, nil, err
		}
	}
	return cfg, store, nil
}

func importFile(store *Store, path string) error {
	rows, views, err := readRowsFile(path)
	if err != nil {
		return err
	}
	if err := store.replaceAll(rows, views); err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	logger.Info("imported data file", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	// Initialize the application
	a := app.New()
	win := a.NewWindow("Filterable Table")

	b := newBrowser(win, cfg, store, logger)
	win.SetContent(createUI(b))
	win.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	if cfg.DataFile != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		w, err := newDataWatcher(cfg.DataFile, logger, func() {
			if err := importFile(store, cfg.DataFile); err != nil {
				logger.Warn("reloading data file", zap.Error(err))
				return
			}
			fyne.Do(func() { b.reloadAll(false) })
		})
		if err != nil {
			return err
		}
		go w.run(ctx)
	}

	win.ShowAndRun()
	return nil
}

// textMeasurer approximates pixel widths from terminal cell widths, so that
// dump needs no display.
var textMeasurer = table.MeasureFunc(func(s string) float32 {
	return float32(runewidth.StringWidth(s)) * 8
})

func runDump(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.allRows()
	if err != nil {
		return fmt.Errorf("loading rows: %w", err)
	}
	filter := cfg.Filter
	if cmd.Flags().Changed("filter") {
		filter = dumpFilter
	}
	opts := cfg.tableOptions(rows, nil, filter)
	opts.Measurer = textMeasurer
	opts.Logger = logger
	m, err := table.NewModel(opts)
	if err != nil {
		return err
	}
	if dumpSort != "" {
		dir := table.Ascending
		if dumpDesc {
			dir = table.Descending
		}
		m.SetSort(dumpSort, dir)
	}

	out := cmd.OutOrStdout()
	if dumpAll {
		m.RenderAllText(out)
		return nil
	}
	if m.Len() == 0 {
		fmt.Fprintln(out, "no rows")
		return nil
	}
	first, last := m.RenderText(out, dumpOffset)
	fmt.Fprintf(out, "rows %d-%d of %d\n", first+1, last, m.Len())
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return importFile(store, args[0])
}
