package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/spektr-org/xpsref/engine"
)

// Config holds CLI configuration. Environment variables supply defaults and
// flags override them.
type Config struct {
	DataFile    string
	Table       string
	Element     string
	Line        string
	Formula     string
	Name        string
	SortColumn  engine.Column
	Descending  bool
	Format      string
	OutFile     string
	PlotFile    string
	BinWidth    float64
	CurvePoints int
	NoCurve     bool
	Reference   int
	Elements    bool
	Lines       bool
	Describe    bool
	LogLevel    slog.Level
	Version     bool
}

type envConfig struct {
	DataFile    string  `env:"XPSREF_DATA_FILE"`
	BinWidth    float64 `env:"XPSREF_BIN_WIDTH" envDefault:"0.1"`
	CurvePoints int     `env:"XPSREF_CURVE_POINTS" envDefault:"1000"`
	LogLevel    string  `env:"XPSREF_LOG_LEVEL" envDefault:"info"`
	Format      string  `env:"XPSREF_FORMAT" envDefault:"table"`
}

var formats = []string{"table", "json", "pretty", "csv", "text"}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		DataFile:    envCfg.DataFile,
		BinWidth:    envCfg.BinWidth,
		CurvePoints: envCfg.CurvePoints,
		Format:      envCfg.Format,
	}
	var sortKey, logLevel string

	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "path to the dataset: .csv, .csv.gz, .csv.zst, .csv.lz4 or .db (default: XPSREF_DATA_FILE)")
	fs.StringVar(&cfg.Table, "table", "", "SQLite table to read (default: binding_energies)")
	fs.StringVar(&cfg.Element, "element", "", "exact element symbol to select, e.g. Cu")
	fs.StringVar(&cfg.Line, "line", "", "exact line to select, e.g. 2p3/2 (\"All Lines\" = any)")
	fs.StringVar(&cfg.Formula, "formula", "", "case-insensitive formula substring")
	fs.StringVar(&cfg.Name, "name", "", "case-insensitive name substring")
	fs.StringVar(&sortKey, "sort", "", "sort column: element, line, be, formula, name, journal (default: ascending BE)")
	fs.BoolVar(&cfg.Descending, "desc", false, "sort the chosen column descending")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: "+strings.Join(formats, ", "))
	fs.StringVar(&cfg.OutFile, "out", "", "write output to file instead of stdout")
	fs.StringVar(&cfg.PlotFile, "plot", "", "write the BE histogram to this file (.png, or .json for the chart model)")
	fs.Float64Var(&cfg.BinWidth, "bin-width", cfg.BinWidth, "histogram resolution in eV")
	fs.IntVar(&cfg.CurvePoints, "curve-points", cfg.CurvePoints, "number of density curve samples")
	fs.BoolVar(&cfg.NoCurve, "no-curve", false, "plot bins without the density curve")
	fs.IntVar(&cfg.Reference, "reference", 0, "print the citation and details of result row N (1-based)")
	fs.BoolVar(&cfg.Elements, "elements", false, "list the elements present and exit")
	fs.BoolVar(&cfg.Lines, "lines", false, "list the line choices for --element and exit")
	fs.BoolVar(&cfg.Describe, "describe", false, "print a column profile of the CSV source and exit")
	fs.StringVar(&logLevel, "log-level", envCfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	col, err := engine.ParseColumn(sortKey)
	if err != nil {
		return Config{}, err
	}
	cfg.SortColumn = col

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("parse log level: %w", err)
	}
	if !validFormat(cfg.Format) {
		return Config{}, fmt.Errorf("unknown format %q", cfg.Format)
	}
	return cfg, nil
}

// Criteria returns the filter criteria selected by flags.
func (c Config) Criteria() engine.FilterCriteria {
	return engine.FilterCriteria{
		Element:       c.Element,
		Line:          c.Line,
		FormulaSearch: c.Formula,
		NameSearch:    c.Name,
	}
}

// Sort returns the sort state selected by flags.
func (c Config) Sort() engine.SortState {
	if c.SortColumn == engine.ColumnNone {
		return engine.DefaultSort()
	}
	return engine.SortState{Column: c.SortColumn, Ascending: !c.Descending}
}

// EngineOptions returns the engine options selected by flags.
func (c Config) EngineOptions(logger *engine.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithCurvePoints(c.CurvePoints),
	}
	if c.NoCurve {
		opts = append(opts, engine.WithoutCurve())
	}
	return opts
}

func validFormat(f string) bool {
	for _, v := range formats {
		if f == v {
			return true
		}
	}
	return false
}
