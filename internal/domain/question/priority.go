package question

// Priority is the triage priority of a question.
type Priority string

// Question priority constants.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is one of the supported values.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Ordinal returns the numeric rank used for priority sorting (high=3, low=1).
// Unknown priorities rank below low.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
