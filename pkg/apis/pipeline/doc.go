// Package pipeline contains the versioned pipeline descriptor API types.
package pipeline
