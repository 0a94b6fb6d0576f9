// Package config provides configuration management for the copa analysis tool.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default values (Default())
//	2. A YAML file: the --config flag, or copa.yaml / configs/copa.yaml
//	3. Environment variables with the COPA_ prefix
//
// # Environment Variables
//
//	COPA_DATASET_PATH=data/copa_summary.csv
//	COPA_DATASET_JURISDICTIONS=IPRA,COPA
//	COPA_ANALYSIS_TOP_K=5
//	COPA_LOGGING_LEVEL=debug
//	COPA_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/copa.prom
//
// # Paths
//
// Paths resolves the report, chart and log directories against the working
// directory:
//
//	paths, err := config.GetPaths(cfg.Output, "")
//	csvPath := paths.GetReportPath("complaints_aggregated.csv")
package config
