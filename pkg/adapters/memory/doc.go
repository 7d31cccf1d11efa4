// Package memory provides in-memory host collaborators: a recording surface,
// a manual clock, a programmable keyboard and a diagnostics buffer.
// They are used by tests and by headless runs.
package memory
