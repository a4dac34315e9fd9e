package signup

// Status is the lifecycle stage of an audit signup. Normal flow moves
// strictly forward through the declared order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// statusOrder ranks statuses for forward-only transition checks.
var statusOrder = map[Status]int{
	StatusPending:    0,
	StatusPlanning:   1,
	StatusInProgress: 2,
	StatusReview:     3,
	StatusCompleted:  4,
}

// Valid reports whether s is a known signup status.
func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// rank returns the position of s in the linear order, -1 if unknown.
func (s Status) rank() int {
	if r, ok := statusOrder[s]; ok {
		return r
	}
	return -1
}
