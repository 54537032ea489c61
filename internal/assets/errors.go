package assets

import "errors"

var (
	// ErrStyleNotFound is returned when no loader has a stylesheet by that name.
	ErrStyleNotFound = errors.New("style not found")
	// ErrTemplateNotFound is returned when no loader has the document template.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidAssetName rejects names carrying separators, dots or NUL bytes.
	ErrInvalidAssetName = errors.New("invalid asset name")
	// ErrInvalidBasePath rejects an --asset-path that is not an existing directory.
	ErrInvalidBasePath = errors.New("invalid base path")
	// ErrAssetRead wraps I/O failures while reading a custom stylesheet or template.
	ErrAssetRead = errors.New("failed to read asset")
	// ErrPathTraversal is returned when a resolved asset lies outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
