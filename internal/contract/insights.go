// Package contract defines the display-ready data shapes shared by the
// service layer, the HTTP API and the CLI renderers.
package contract

// DailyBucket is one calendar day of aggregated study time.
type DailyBucket struct {
	Day          string  `json:"day"` // YYYY-MM-DD, local time
	Hours        float64 `json:"hours"`
	SessionCount int     `json:"session_count"`
}

// CompletionSplit is the completed/pending percentage pair for the task pie.
// The two values always sum to 100; with no tasks at all the split is
// defined as {0, 100} so the chart stays renderable.
type CompletionSplit struct {
	CompletedPercent int `json:"completed_percent"`
	PendingPercent   int `json:"pending_percent"`
}

// StreakDay marks whether any session was completed on a calendar day.
type StreakDay struct {
	Date    string `json:"date"` // YYYY-MM-DD, local time
	Studied bool   `json:"studied"`
}

// StreakReport is the trailing streak calendar plus the derived streak count.
type StreakReport struct {
	Days   []StreakDay `json:"days"`
	Streak int         `json:"streak"`
}
