package pipeline

import "errors"

// Sentinel errors for HTML generation.
var (
	ErrHTMLConversion     = errors.New("HTML conversion failed")
	ErrTemplateParse      = errors.New("template parsing failed")
	ErrTemplateRender     = errors.New("template rendering failed")
	ErrIncompleteTemplate = errors.New("template missing required definition")
)
