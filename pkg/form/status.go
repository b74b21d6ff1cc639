package form

// Status is the outcome of one request against a form.
type Status string

// Form statuses. Exactly one is reported per response.
const (
	StatusInit     Status = "INIT"
	StatusRestored Status = "RESTORED"
	StatusRepeated Status = "REPEATED"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// String returns the status name as written into the response document.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusInit, StatusRestored, StatusRepeated, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Viewing reports whether the status renders the page's view.
func (s Status) Viewing() bool {
	return s == StatusInit || s == StatusRestored || s == StatusRepeated
}
