package auditrun

// Status is the lifecycle stage of an audit run. Delivered is terminal and
// is reachable only through the delivery pipeline's confirmed path.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDelivered  Status = "delivered"
)

// Valid reports whether s is a known run status.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusReview, StatusDelivered:
		return true
	}
	return false
}
