package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/internal/exporter"
	"github.com/cherdeman/COPA-Project/internal/files"
	"github.com/cherdeman/COPA-Project/internal/infrastructure"
	"github.com/cherdeman/COPA-Project/internal/services"
	"github.com/cherdeman/COPA-Project/internal/validation"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	app := &application{}
	rootCmd := newRootCmd(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if cerr := app.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// application holds the state shared by every subcommand of one run
type application struct {
	configPath       string
	chartPath        string
	jsonPath         string
	csvPath          string
	allJurisdictions bool

	ctx       context.Context
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	paths     *config.Paths
	service   *services.AnalysisService
}

func newRootCmd(app *application) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Analyze COPA police complaint summary exports",
		Long: `Load a CSV export of police complaint summaries, expand the
multi-valued complainant and officer columns into per-category counts and
answer volume questions by beat, date and demographic characteristic.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.setup(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&app.chartPath, "chart", "", "Also write the result as an .xlsx chart to this path")
	flags.StringVar(&app.jsonPath, "json", "", "Also write the result as JSON to this path")
	flags.StringVar(&app.csvPath, "csv", "", "Also write the query result as CSV to this path (top-categories, volume, cross)")
	flags.BoolVar(&app.allJurisdictions, "all-jurisdictions", false, "Query every complaint instead of the configured jurisdictions")

	rootCmd.AddCommand(newSummaryCmd(app))
	rootCmd.AddCommand(newTopCategoriesCmd(app))
	rootCmd.AddCommand(newVolumeCmd(app))
	rootCmd.AddCommand(newCrossCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration and builds the logger, telemetry and service
func (a *application) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return errors.NewConfigError("failed to load configuration", err)
	}
	a.cfg = cfg

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return errors.NewConfigError("failed to initialize logger", err)
	}
	a.logger = logger

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return errors.NewConfigError("failed to initialize telemetry", err)
	}
	a.telemetry = telemetry

	paths, err := config.GetPaths(cfg.Output, "")
	if err != nil {
		return errors.NewConfigError("failed to resolve output paths", err)
	}
	a.paths = paths
	paths.LogPathResolution(logger)

	files := validation.NewFileValidator(logger)
	if a.chartPath != "" {
		if err := files.ValidateOutputFile(paths.GetChartPath(a.chartPath), ".xlsx"); err != nil {
			return err
		}
	}
	if a.jsonPath != "" {
		if err := files.ValidateOutputFile(paths.GetReportPath(a.jsonPath), ".json"); err != nil {
			return err
		}
	}
	if a.csvPath != "" {
		if err := files.ValidateOutputFile(paths.GetReportPath(a.csvPath), ".csv"); err != nil {
			return err
		}
	}

	a.ctx = infrastructure.EnsureRunID(ctx)
	a.service = services.NewAnalysisService(cfg, logger, telemetry)

	logger.DebugContext(a.ctx, "run started",
		slog.String("run_id", infrastructure.GetRunID(a.ctx)),
		slog.Bool("all_jurisdictions", a.allJurisdictions))
	return nil
}

// load reads the source named on the command line, or the configured one.
// A directory resolves to the newest CSV export inside it.
func (a *application) load(args []string) (*services.LoadedData, error) {
	source := a.cfg.Dataset.Path
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return nil, errors.NewInvalidArgumentError("no source file: pass one or set dataset.path")
	}

	resolved, err := files.NewDiscovery("").ResolveSource(source)
	if err != nil {
		return nil, err
	}
	if resolved != source {
		a.logger.InfoContext(a.ctx, "using newest export in directory",
			slog.String("directory", source),
			slog.String("path", resolved))
	}
	return a.service.Load(a.ctx, resolved, a.allJurisdictions)
}

func (a *application) printer(cmd *cobra.Command) *exporter.ConsolePrinter {
	return exporter.NewConsolePrinter(cmd.OutOrStdout(), a.cfg.Output.Color)
}

// writeJSON writes v when --json was given
func (a *application) writeJSON(v any) error {
	if a.jsonPath == "" {
		return nil
	}
	return exporter.WriteJSON(a.logger, a.paths.GetReportPath(a.jsonPath), v)
}

// writeBreakdownCSV writes b when --csv was given
func (a *application) writeBreakdownCSV(b domain.Breakdown) error {
	if a.csvPath == "" {
		return nil
	}
	_, err := exporter.NewCSVWriter(a.paths, a.logger).WriteBreakdown(a.csvPath, b)
	return err
}

// writeCrossCSV writes t when --csv was given
func (a *application) writeCrossCSV(t domain.CrossTable) error {
	if a.csvPath == "" {
		return nil
	}
	_, err := exporter.NewCSVWriter(a.paths, a.logger).WriteCrossTable(a.csvPath, t)
	return err
}

// chartWriter returns nil when --chart was not given
func (a *application) chartWriter() *exporter.ChartWriter {
	if a.chartPath == "" {
		return nil
	}
	return exporter.NewChartWriter(a.paths, a.logger)
}

func (a *application) close() error {
	if a.telemetry == nil {
		return nil
	}
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	err := a.telemetry.Shutdown(ctx)
	a.telemetry = nil
	return err
}
