package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/helpers"
	"github.com/spektr-org/xpsref/schema"
)

// ============================================================================
// XPSREF CLI: Browse and plot XPS binding energy references
// ============================================================================

const version = "0.1.0"

const usageText = `xpsref: XPS binding energy reference browser

Usage:
  xpsref --file refs.csv --element Cu --line 2p3/2
  xpsref --file refs.csv.gz --formula oxide --sort be --desc
  xpsref --file refs.db --element C --plot carbon.png --bin-width 0.5
  xpsref --file refs.csv --element Cu --reference 1
  xpsref --file refs.csv --describe

Flags:
`

const envText = `
Environment:
  XPSREF_DATA_FILE      Default for --file
  XPSREF_BIN_WIDTH      Default for --bin-width (0.1)
  XPSREF_CURVE_POINTS   Default for --curve-points (1000)
  XPSREF_LOG_LEVEL      Default for --log-level (info)
  XPSREF_FORMAT         Default for --format (table)

Formats:
  table     Terminal table with the result count (default)
  json      Matching records as JSON
  pretty    Pretty-printed JSON
  csv       Table rows as CSV (BE with two decimals)
  text      Result count only
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("xpsref", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
		fmt.Fprint(stderr, envText)
	}

	cfg, err := ParseConfig(fs, args)
	if err != nil {
		return err
	}

	if cfg.Version {
		fmt.Fprintf(stdout, "xpsref %s\n", version)
		return nil
	}
	if cfg.DataFile == "" {
		fs.Usage()
		return errors.New("--file is required")
	}
	if cfg.Table != "" && !helpers.IsSQLite(cfg.DataFile) {
		return errors.New("--table requires a .db/.sqlite file")
	}

	logger := engine.NewTextLogger(stderr, cfg.LogLevel)
	sch := schema.Default()

	if cfg.Describe {
		return describe(cfg, sch, stdout)
	}

	var ds *engine.Dataset
	if cfg.Table != "" {
		ds, err = loadTable(ctx, cfg, sch, logger)
	} else {
		ds, err = helpers.LoadFile(ctx, cfg.DataFile, sch, logger)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.DataFile, err)
	}

	out := stdout
	if cfg.OutFile != "" {
		f, ferr := os.Create(cfg.OutFile)
		if ferr != nil {
			return fmt.Errorf("create output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close output file: %w", cerr)
			}
		}()
		out = f
	}

	switch {
	case cfg.Elements:
		return writeList(out, cfg.Format, ds.Elements())
	case cfg.Lines:
		return writeList(out, cfg.Format, ds.LineChoices(cfg.Element))
	}

	session := engine.NewSession(engine.NewCoordinator(ds, cfg.EngineOptions(logger)...))
	res, err := apply(ctx, session, cfg)
	if err != nil {
		return err
	}

	if cfg.Reference > 0 {
		if cfg.Reference > res.View.Len() {
			return fmt.Errorf("--reference %d: only %s", cfg.Reference, res.Status)
		}
		return writeReference(out, cfg.Format, res.View.Record(cfg.Reference-1))
	}

	if err := render(out, cfg.Format, res); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if cfg.PlotFile != "" {
		return plot(ctx, session, cfg, res.View.Len(), stderr)
	}
	return nil
}

// apply replays the flag selections as session commands, the same way a UI
// would drive the session.
func apply(ctx context.Context, s *engine.Session, cfg Config) (*engine.Result, error) {
	var cmds []engine.Command
	if cfg.Element != "" {
		cmds = append(cmds, engine.SelectElement(cfg.Element))
	}
	if cfg.Line != "" {
		cmds = append(cmds, engine.SelectLine(cfg.Line))
	}
	if cfg.Formula != "" {
		cmds = append(cmds, engine.SearchFormula(cfg.Formula))
	}
	if cfg.Name != "" {
		cmds = append(cmds, engine.SearchName(cfg.Name))
	}
	if cfg.SortColumn != engine.ColumnNone {
		// First click sorts ascending, second click flips.
		cmds = append(cmds, engine.ClickColumn(cfg.SortColumn))
		if cfg.Descending {
			cmds = append(cmds, engine.ClickColumn(cfg.SortColumn))
		}
	}

	res := s.Refresh(ctx)
	for _, cmd := range cmds {
		var err error
		if res, err = s.Apply(ctx, cmd); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// plot writes the histogram of the current selection. An empty selection and
// a selection without binding energies are reported, not failed.
func plot(ctx context.Context, s *engine.Session, cfg Config, results int, stderr io.Writer) error {
	if results == 0 {
		fmt.Fprintln(stderr, "There is no data to plot.")
		return nil
	}
	h, err := s.Plot(ctx, cfg.BinWidth)
	if errors.Is(err, engine.ErrNoData) {
		fmt.Fprintln(stderr, "No binding energy values to plot.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := writePlot(cfg.PlotFile, engine.BuildChart(h, s.Criteria())); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "plot written to %s (%d bins, %d references)\n", cfg.PlotFile, h.Bins(), h.Total)
	return nil
}

func describe(cfg Config, sch schema.Config, w io.Writer) error {
	if helpers.IsSQLite(cfg.DataFile) {
		return errors.New("--describe reads CSV sources only")
	}
	rc, err := helpers.OpenDataset(cfg.DataFile)
	if err != nil {
		return err
	}
	defer rc.Close()
	report, err := schema.DescribeCSV(rc, sch)
	if err != nil {
		return err
	}
	return writeReport(w, cfg.Format, report)
}

func loadTable(ctx context.Context, cfg Config, sch schema.Config, logger *engine.Logger) (*engine.Dataset, error) {
	db, err := helpers.OpenSQLite(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	records, err := helpers.LoadSQLite(ctx, db, cfg.Table, sch)
	if err == nil && len(records) == 0 {
		err = helpers.ErrEmptyDataset
	}
	var ds *engine.Dataset
	if err == nil {
		ds = engine.NewDataset(records)
	}
	logger.LogLoad(ctx, cfg.DataFile+"#"+cfg.Table, ds, err)
	return ds, err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
