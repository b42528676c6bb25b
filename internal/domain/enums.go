package domain

type TodoStatus string

const (
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
)

type RangeKind string

const (
	RangeWeek  RangeKind = "week"
	RangeMonth RangeKind = "month"
	RangeYear  RangeKind = "year"
)

// ValidRangeKinds is the canonical set of accepted range strings.
var ValidRangeKinds = map[string]bool{
	"week": true, "month": true, "year": true,
}

// Days returns the number of trailing calendar days covered by the range.
// Unknown values fall back to a week.
func (r RangeKind) Days() int {
	switch r {
	case RangeMonth:
		return 30
	case RangeYear:
		return 365
	default:
		return 7
	}
}
