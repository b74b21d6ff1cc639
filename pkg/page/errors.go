package page

import (
	"errors"
	"fmt"
)

// Sentinel errors for the page package.
var (
	// ErrNotFound matches every lookup failure that should answer 404.
	ErrNotFound = errors.New("page: not found")

	// ErrPageNotFound is returned when no page is registered for area and name.
	ErrPageNotFound = fmt.Errorf("%w: no such page", ErrNotFound)

	// ErrTemplateNotFound is returned when a page has no template resource.
	ErrTemplateNotFound = fmt.Errorf("%w: no such template", ErrNotFound)

	// ErrInvalidPage is returned when a registered factory cannot produce a usable page.
	ErrInvalidPage = errors.New("page: invalid page")

	// ErrTemplateUnreadable is returned when the template resource is not a readable file.
	ErrTemplateUnreadable = errors.New("page: template unreadable")
)
