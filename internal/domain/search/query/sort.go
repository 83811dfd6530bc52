package query

// SortField selects the result ordering key.
type SortField string

// Sort field constants.
const (
	SortRelevance SortField = "relevance"
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
)

// IsValid checks if the sort field is one of the supported values.
func (f SortField) IsValid() bool {
	switch f {
	case SortRelevance, SortCreatedAt, SortUpdatedAt, SortPriority, SortStatus:
		return true
	}
	return false
}

// Direction is the sort direction.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}
