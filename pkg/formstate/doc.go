// Package formstate keeps pending form records in the visitor's session.
//
// The session value "form" holds area → page → {data, close}. A Store is
// loaded once when a request starts and flushed once when it ends:
//
//	forms, err := formstate.Load(sess)
//	defer forms.Flush(sess)
//
// Closed records keep only the form id so a resubmission of the same form
// can be detected.
package formstate
