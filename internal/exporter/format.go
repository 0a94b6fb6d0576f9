package exporter

import (
	"fmt"
	"strconv"
)

// formatCount formats a count for CSV and console output
func formatCount(n int) string {
	return strconv.Itoa(n)
}

// formatShare formats a 0..1 ratio as a whole percentage, e.g. 0.754 -> "75%"
func formatShare(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}
