// Package dataprocessing turns loosely structured tabular session data
// into typed, validated SessionRecords plus a DataQuality report.
//
// The normalizer is deliberately forgiving at row level: malformed
// dates, numbers and duplicate rows are counted and dropped, never
// fatal. Only structural problems (missing required columns, empty
// input) abort the batch, and even then the result is an empty record
// set with an issue string rather than an error.
//
// Typical usage:
//
//	records, quality := dataprocessing.Normalize(table)
//	if len(quality.Issues) > 0 {
//	    // surface prominently; records is empty on structural failure
//	}
package dataprocessing
