package render

import "errors"

var (
	// ErrTemplateParse is returned when a page template cannot be parsed.
	ErrTemplateParse = errors.New("render: template parse failed")

	// ErrTemplateExec is returned when a parsed template fails to execute.
	ErrTemplateExec = errors.New("render: template execution failed")
)
