package assets

// Names of the built-in assets.
const (
	// DefaultStyleName is the stylesheet linked from the generated HTML.
	DefaultStyleName = "resume"

	// PrintStyleName is the stylesheet injected into the page before printing.
	PrintStyleName = "print"

	// DefaultTemplateName holds the document and section templates.
	DefaultTemplateName = "resume"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
