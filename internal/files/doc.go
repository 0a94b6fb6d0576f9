// Package files finds complaint exports on disk.
//
// A dataset path may name a single CSV file or a directory of periodic
// exports; Discovery resolves the directory case to the most recently
// modified CSV so that dropping a fresh export next to older ones is
// enough to analyse it.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/data")
//	source, err := discovery.ResolveSource("exports")
package files
