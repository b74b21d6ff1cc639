// Package sitemode serves site pages and carries their forms across requests.
//
// For every request the Engine resolves the page, asks it for access, and
// decides one form status, in this order:
//
//   - INIT: nothing was submitted and no open record exists.
//   - REPEATED: the submitted form id belongs to a form already accepted.
//   - RESTORED: nothing was submitted but an open record exists; its values
//     are replayed into the page.
//   - ACCEPTED or REJECTED: the submission is bound and checked. Rejected
//     submissions are kept as the open record, accepted ones close it.
//
// The assembled document carries the status, a form id, an echo of the
// request and optionally a snapshot of selected session values.
package sitemode
