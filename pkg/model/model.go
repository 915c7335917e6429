// Package model holds the persisted records. Field names and JSON tags match
// the stored slot layout, timestamps are ISO-8601 and calendar dates are
// YYYY-MM-DD strings.
package model

const (
	UnknownClient  = "Unknown Client"
	UnknownProject = "Unknown Project"
)
