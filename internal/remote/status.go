package remote

import "strings"

// Status is a command invocation status. The set is closed: anything the
// service reports outside of it must be treated as a protocol violation,
// never as a state to wait on.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusDelayed    Status = "Delayed"
	StatusInProgress Status = "InProgress"
	StatusSuccess    Status = "Success"
	StatusFailed     Status = "Failed"
	StatusCancelled  Status = "Cancelled"
)

var statusByLabel = map[string]Status{
	"pending":    StatusPending,
	"delayed":    StatusDelayed,
	"inprogress": StatusInProgress,
	"success":    StatusSuccess,
	"failed":     StatusFailed,
	"cancelled":  StatusCancelled,
}

// ParseStatus maps a service-reported status string to the closed Status set
// (case-insensitive). ok is false for unrecognized values.
func ParseStatus(raw string) (Status, bool) {
	status, ok := statusByLabel[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}

// Terminal reports whether the status ends the poll loop.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
