package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
)

// selectNodes resolves a selector against the document root. Selectors
// beginning with "/" are evaluated as XPath, anything else as CSS.
func selectNodes(root *html.Node, selector string) ([]*html.Node, error) {
	if strings.HasPrefix(selector, "/") {
		return htmlquery.QueryAll(root, selector)
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("bad selector %q: %w", selector, err)
	}
	return sel.MatchAll(root), nil
}

// stripNonContent drops elements whose text never renders.
func stripNonContent(doc *goquery.Document) {
	doc.Find("script, style, noscript").Remove()
}

func collectText(n *html.Node) string {
	buf := new(bytes.Buffer)
	recursiveCollect(n, buf)
	return buf.String()
}

func recursiveCollect(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		buf.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		recursiveCollect(c, buf)
	}
}

func joinNodeText(nodes []*html.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, collectText(n))
	}
	return compactWhitespace(strings.Join(parts, " "))
}

// compactWhitespace collapses every whitespace run (newlines included) into a
// single space and trims the ends, so extracted text diffs by plain string
// equality without markup-formatting noise.
func compactWhitespace(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.Trim(s, " ")
	return s
}
