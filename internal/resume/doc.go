// Package resume parses a markdown résumé into a structured Document.
//
// The parser follows a fixed convention rather than general markdown:
//
//	# Name                 document name (first H1 only)
//	- **Email**: a@b.com   contact entries (bullets between the name and the first H2)
//	## Experience          section header, typed by its title
//	### Acme | Remote      sub-entry, kept as section content
//
// Parsing never fails. Lines that fit no rule are attached to the open
// section, or dropped when no section is open yet.
package resume
