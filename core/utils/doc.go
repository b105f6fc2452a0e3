// Package utils provides common utility functions for the loot-splitter application.
// It includes helpers for lenient number parsing, type conversion and integer arithmetic
// that don't fit into domain-specific packages.
package utils
