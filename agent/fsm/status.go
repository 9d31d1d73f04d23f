package fsm

// Status is the outcome of the finished protocol. The numeric values are
// stable, they are given to callers as status codes.
type Status int

const (
	StatusUndefined Status = iota
	StatusSuccess
	StatusFailed
	StatusDeclined
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailed:
		return "Failed"
	case StatusDeclined:
		return "Declined"
	default:
		return "Undefined"
	}
}

// Code returns the numeric status code.
func (s Status) Code() int {
	return int(s)
}
