// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides complaint CSV fixtures and a buffered
// slog handler for asserting on log output.
package shared
