package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wcdoc"
	"github.com/fwojciec/wcdoc/build"
	"github.com/fwojciec/wcdoc/fs"
	"github.com/fwojciec/wcdoc/goldmark"
	"github.com/fwojciec/wcdoc/jsonschema"
	wcslog "github.com/fwojciec/wcdoc/slog"
	"github.com/fwojciec/wcdoc/sqlite"
	"github.com/fwojciec/wcdoc/toml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the build history.
	DB *sqlite.DB

	// Build history service, wired by Run.
	BuildService wcdoc.BuildService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wcdoc"),
		kong.Description("Build element and object documentation indices from doc-comment records."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wcdoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	cfg, err := toml.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Usage errors are reported before the history database is created.
	if cmd == "build" {
		cli.Build.applyConfig(cfg)
		if cli.Build.Records == "" || cli.Build.Out == "" {
			return fmt.Errorf("records file and output directory required (as arguments or in the config file)")
		}
	}

	// The list command is a dry run and never touches the history.
	if cmd == "build" || cmd == "history" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WCDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.BuildService = sqlite.NewBuildService(m.DB)
		deps.Builds = m.BuildService
	}

	switch cmd {
	case "build":
		if deps.Builder, err = m.newBuilder(cfg, cli.Build.Records, cli.Build.Out, cli.Build.Concurrency, deps.Logger); err != nil {
			return err
		}

	case "list":
		records := cli.List.Records
		if records == "" {
			records = cfg.Records
		}
		if records == "" {
			return fmt.Errorf("records file required (as argument or in the config file)")
		}
		classifier, err := cfg.Classifier()
		if err != nil {
			return fmt.Errorf("failed to load extension rules: %w", err)
		}
		deps.Builder = &build.Builder{
			Source:     fs.NewRecordFile(records),
			Classifier: classifier,
			Logger:     deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

// newBuilder wires the full pipeline for writing into out.
func (m *Main) newBuilder(cfg *toml.Config, records, out string, concurrency int, logger *slog.Logger) (*build.Builder, error) {
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, fmt.Errorf("failed to load extension rules: %w", err)
	}

	validator, err := jsonschema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schemas: %w", err)
	}

	absOut, err := filepath.Abs(out)
	if err != nil {
		return nil, err
	}

	return &build.Builder{
		Source:      fs.NewRecordFile(records),
		Classifier:  classifier,
		Renderer:    wcslog.NewLoggingRenderer(goldmark.NewRenderer(), logger),
		Validator:   validator,
		Store:       wcslog.NewLoggingIndexStore(fs.NewIndexStore(absOut), logger),
		Builds:      m.BuildService,
		OutputDir:   absOut,
		Concurrency: concurrency,
		Logger:      logger,
	}, nil
}

// newLogger returns a text logger on w. Only warnings are shown unless
// verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("WCDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wcdoc.db"
	}
	dir := filepath.Join(home, ".wcdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wcdoc.db")
}
