package question

// Status is the lifecycle state of a question.
type Status string

// Question status constants.
const (
	StatusUnanswered Status = "unanswered"
	StatusAnswered   Status = "answered"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
	StatusClosed     Status = "closed"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnanswered, StatusAnswered, StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}
