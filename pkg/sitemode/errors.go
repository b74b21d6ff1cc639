package sitemode

import "errors"

// ErrForbidden is returned when a page refuses the visitor.
var ErrForbidden = errors.New("sitemode: access denied")
