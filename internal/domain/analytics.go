package domain

// SubjectMinutes maps a free-text subject to accumulated study minutes.
type SubjectMinutes map[string]int

// Add accumulates minutes under the given subject, creating the key at 0
// when new. The empty subject is bucketed as "general".
func (m SubjectMinutes) Add(subject string, minutes int) {
	if subject == "" {
		subject = "general"
	}
	m[subject] += minutes
}

// Total returns the sum of all per-subject minutes.
func (m SubjectMinutes) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// Aggregate is the single per-owner rolled-up analytics record.
// All counters are lifetime values: there is no decrement path, so deleting
// a session or un-completing a todo does not reverse prior updates.
type Aggregate struct {
	OwnerID             string
	TotalSessions       int
	TotalStudyMin       int
	TotalCompletedTasks int
	Subjects            SubjectMinutes
}

// NewAggregate returns a zeroed aggregate for the given owner.
func NewAggregate(ownerID string) *Aggregate {
	return &Aggregate{
		OwnerID:  ownerID,
		Subjects: make(SubjectMinutes),
	}
}
