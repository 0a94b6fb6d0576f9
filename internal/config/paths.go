package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved output locations for one run
type Paths struct {
	BaseDir    string
	ReportsDir string
	ChartsDir  string
	LogsDir    string
}

// GetPaths resolves the configured output directories against baseDir.
// An empty baseDir means the current working directory.
func GetPaths(cfg OutputConfig, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	return &Paths{
		BaseDir:    baseDir,
		ReportsDir: resolve(baseDir, cfg.ReportsDir, DefaultReportsDir),
		ChartsDir:  resolve(baseDir, cfg.ChartsDir, DefaultChartsDir),
		LogsDir:    resolve(baseDir, DefaultLogsDir, DefaultLogsDir),
	}, nil
}

func resolve(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the report and chart directories
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.ChartsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the path for a report file; absolute names are kept
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// GetChartPath returns the path for a chart workbook; absolute names are kept
func (p *Paths) GetChartPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ChartsDir, filename)
}

// LogPathResolution logs the resolved directories at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved output paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("charts_dir", p.ChartsDir),
		slog.String("logs_dir", p.LogsDir))
}
