package sitemode

import (
	"context"
	"fmt"

	"github.com/map-framework/addon-mode-site/pkg/page"
)

// Authorize asks p whether the visitor may proceed.
// It runs before the request body is looked at.
func Authorize(ctx context.Context, p page.Page) error {
	if p.Authorize(ctx) {
		return nil
	}
	req := p.PageBase().Request()
	return fmt.Errorf("%w: %s/%s", ErrForbidden, req.Area, req.Page)
}
