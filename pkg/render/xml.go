package render

import (
	"context"
	"fmt"
	"io"

	"github.com/map-framework/addon-mode-site/pkg/page"
)

// XMLRenderer writes the raw response document and ignores the template.
type XMLRenderer struct{}

func (XMLRenderer) Render(_ context.Context, w io.Writer, _ page.Template, view *View) error {
	data, err := view.Document.XML()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateExec, err)
	}
	_, err = w.Write(data)
	return err
}
