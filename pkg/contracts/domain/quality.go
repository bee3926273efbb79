package domain

// Data source tags recorded in DataQuality.Source.
const (
	SourceSheets = "sheets"
	SourceSample = "sample"
)

// DataQuality accompanies every normalization pass. Issues are fatal to
// the batch (missing required columns, empty input) and are surfaced
// prominently; Warnings are non-fatal row-level counts (bad dates, bad
// numbers, duplicates) shown as secondary information. A report is
// created fresh per load and treated as immutable once returned.
type DataQuality struct {
	Source   string         `json:"source"`
	Issues   []string       `json:"issues"`
	Warnings map[string]int `json:"warnings"`
	Headers  []string       `json:"headers"`
}

// NewDataQuality returns an empty report for the given source tag.
func NewDataQuality(source string) DataQuality {
	return DataQuality{
		Source:   source,
		Issues:   []string{},
		Warnings: map[string]int{},
	}
}

// AddIssue appends a fatal-to-batch issue.
func (q *DataQuality) AddIssue(msg string) {
	q.Issues = append(q.Issues, msg)
}

// Warn records n occurrences of a non-fatal warning kind. Zero counts
// are not recorded.
func (q *DataQuality) Warn(kind string, n int) {
	if n <= 0 {
		return
	}
	if q.Warnings == nil {
		q.Warnings = map[string]int{}
	}
	q.Warnings[kind] += n
}

// Extend composes a sub-step report into this one: issues are
// concatenated in order and warning counts are summed per kind. The
// source tag and detected headers of the receiver win unless unset.
func (q *DataQuality) Extend(sub DataQuality) {
	q.Issues = append(q.Issues, sub.Issues...)
	for kind, n := range sub.Warnings {
		q.Warn(kind, n)
	}
	if len(q.Headers) == 0 {
		q.Headers = sub.Headers
	}
}
