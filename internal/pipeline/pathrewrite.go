package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// rewriteTargets lists the attributes that may carry a local file reference.
var rewriteTargets = map[atom.Atom]string{
	atom.Link: "href", // the résumé stylesheet
	atom.Img:  "src",
	atom.A:    "href",
}

// RewriteRelativePaths turns relative stylesheet, image and link references
// into file:// URLs under baseDir, so a document printed from a temp file
// still finds the files next to the résumé.
// An empty baseDir returns the document unchanged. URLs, anchors and
// absolute paths are left alone. References escaping baseDir are left alone
// too, except stylesheets that exist on disk: the page would print unstyled
// without them.
func RewriteRelativePaths(document, baseDir string) (string, error) {
	if baseDir == "" {
		return document, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}

	walk(root, func(n *html.Node) {
		if key, ok := rewriteTargets[n.DataAtom]; ok {
			rewriteAttr(n, key, absDir, isStylesheet(n))
		}
	})

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LocalStylesheets returns the relative stylesheet hrefs of a document,
// resolved against baseDir. Used to find stylesheets that do not exist.
func LocalStylesheets(document, baseDir string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	var paths []string
	walk(root, func(n *html.Node) {
		if !isStylesheet(n) {
			return
		}
		if href := attr(n, "href"); isRelativePath(href) {
			paths = append(paths, filepath.Join(baseDir, filepath.FromSlash(href)))
		}
	})
	return paths, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isStylesheet(n *html.Node) bool {
	return n.DataAtom == atom.Link && strings.EqualFold(attr(n, "rel"), "stylesheet")
}

// rewriteAttr points a relative reference at its file under dir. With
// existingOutside, a reference escaping dir is rewritten when the file exists.
func rewriteAttr(n *html.Node, key, dir string, existingOutside bool) {
	for i, a := range n.Attr {
		if a.Key != key || !isRelativePath(a.Val) {
			continue
		}

		absPath := filepath.Join(dir, filepath.FromSlash(a.Val))
		if !isPathUnderDir(absPath, dir) && !(existingOutside && fileutil.FileExists(absPath)) {
			continue
		}
		n.Attr[i].Val = fileutil.PathToFileURL(absPath)
	}
}

// isRelativePath reports whether ref is a local relative path.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false // http:, https:, file:, data:, mailto: (single letters are drive names)
	}
	return !filepath.IsAbs(ref)
}

func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(dir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
