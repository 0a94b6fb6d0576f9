package config

// Application constants
const (
	// Application Info
	AppName = "copa"

	// Output locations (relative to the working directory unless absolute)
	DefaultReportsDir = "reports"
	DefaultChartsDir  = "charts"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "logs/copa.log"

	// Analysis defaults
	DefaultTopK = 10

	// Report file names
	AggregatedTableCSV = "complaints_aggregated.csv"
)
