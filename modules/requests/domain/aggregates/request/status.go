package request

import "github.com/iota-uz/campus-sdk/pkg/serrors"

// Status is the machine-readable request state. Each status carries a fixed
// Hebrew display label; the boundary accepts either form and maps it to the
// code, never coercing unrecognized input.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

var ErrInvalidStatus = serrors.NewError("INVALID_STATUS", "סטטוס לא תקין")

var statusLabels = map[Status]string{
	StatusPending:    "ממתין",
	StatusInProgress: "בטיפול",
	StatusApproved:   "אושר",
	StatusRejected:   "נדחה",
}

var labelsToStatus = func() map[string]Status {
	m := make(map[string]Status, len(statusLabels))
	for code, label := range statusLabels {
		m[label] = code
	}
	return m
}()

// ParseStatus accepts either the internal code or the display label.
func ParseStatus(raw string) (Status, error) {
	if _, ok := statusLabels[Status(raw)]; ok {
		return Status(raw), nil
	}
	if code, ok := labelsToStatus[raw]; ok {
		return code, nil
	}
	return "", ErrInvalidStatus
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Display returns the Hebrew label for the status.
func (s Status) Display() string {
	return statusLabels[s]
}
