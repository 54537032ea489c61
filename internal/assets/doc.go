// Package assets provides the stylesheets and HTML templates used to build
// the résumé document.
//
// Assets are embedded in the binary. A custom base directory can override
// them with the same layout:
//
//	assets/
//	├── styles/
//	│   ├── resume.css     linked from the generated HTML
//	│   └── print.css      injected before printing to PDF
//	└── templates/
//	    └── resume.html    document and section templates
//
// Custom assets take precedence; missing files fall back to the embedded ones.
package assets
