package form

// Outcome is the result of a page's business check.
// The zero value is a rejection without a reason.
type Outcome struct {
	Reason    string
	Reference string
	accepted  bool
}

// Accept returns an accepting outcome.
func Accept() Outcome {
	return Outcome{accepted: true}
}

// Reject returns a rejecting outcome. Reference names the offending field
// and may be empty.
func Reject(reason, reference string) Outcome {
	return Outcome{Reason: reason, Reference: reference}
}

// WithReason returns a copy of o carrying reason.
func (o Outcome) WithReason(reason string) Outcome {
	o.Reason = reason
	return o
}

// Accepted reports whether the submission was accepted.
func (o Outcome) Accepted() bool {
	return o.accepted
}
