// Package analytics derives standings, headline KPIs, streaks, player
// profiles and charting series from normalized session records.
//
// Every function is pure: records in, values out, no shared state. All
// of them tolerate empty input by returning a zero or "no data" result
// rather than an error, since an empty dataset is a normal state for a
// user-facing view.
package analytics
