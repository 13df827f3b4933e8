// Package dom adapts a parsed HTML document for the analyzer packages.
// It wraps goquery with selector evaluation that reports malformed
// selectors as a no-match result instead of panicking, so speculative
// pattern scans can never abort an analysis.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is an immutable, queryable snapshot of one parsed HTML page.
// The analyzer never mutates it and never retains it beyond a call.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML. An empty or whitespace-only
// input still yields a valid (empty) document.
func Parse(rawHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// FromGoquery wraps an existing goquery document.
func FromGoquery(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// Root returns the document root selection.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Query evaluates a CSS selector against the whole document.
// A malformed selector returns (nil, false); an empty match returns
// an empty selection and true.
func (d *Document) Query(selector string) (*goquery.Selection, bool) {
	return Query(d.doc.Selection, selector)
}

// Count returns the number of elements matching selector, or 0 when the
// selector is malformed.
func (d *Document) Count(selector string) int {
	sel, ok := d.Query(selector)
	if !ok {
		return 0
	}
	return sel.Length()
}

// Query evaluates a CSS selector scoped to root. Malformed selectors are
// reported via the second return value rather than a panic; the scan of
// many speculative patterns relies on this.
func Query(root *goquery.Selection, selector string) (*goquery.Selection, bool) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	return root.FindMatcher(matcher), true
}

// Matches reports whether the first node of sel matches the selector.
// Malformed selectors match nothing.
func Matches(sel *goquery.Selection, selector string) bool {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return false
	}
	return sel.First().IsMatcher(matcher)
}

// NodeTag returns the lowercased tag name of the first node in sel,
// or "" for an empty selection.
func NodeTag(sel *goquery.Selection) string {
	return goquery.NodeName(sel)
}

// Classes returns the class tokens of the first node in sel.
func Classes(sel *goquery.Selection) []string {
	return strings.Fields(sel.AttrOr("class", ""))
}

// CompactText returns sel's text content with runs of whitespace
// collapsed to single spaces and the ends trimmed.
func CompactText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// NthOfTypeIndex returns the 1-based position of sel's first node among
// its same-tag element siblings, for use in :nth-of-type selectors.
// Detached nodes count as position 1.
func NthOfTypeIndex(sel *goquery.Selection) int {
	nodes := sel.Nodes
	if len(nodes) == 0 {
		return 1
	}
	n := nodes[0]
	if n.Parent == nil {
		return 1
	}
	idx := 1
	for sib := n.Parent.FirstChild; sib != nil; sib = sib.NextSibling {
		if sib == n {
			break
		}
		if sib.Type == html.ElementNode && sib.Data == n.Data {
			idx++
		}
	}
	return idx
}

// HasSameTagSiblingsOnly reports whether every element sibling of sel
// shares its tag. Such levels carry no discriminating power beyond the
// tag itself.
func HasSameTagSiblingsOnly(sel *goquery.Selection) bool {
	nodes := sel.Nodes
	if len(nodes) == 0 || nodes[0].Parent == nil {
		return true
	}
	n := nodes[0]
	for sib := n.Parent.FirstChild; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && sib.Data != n.Data {
			return false
		}
	}
	return true
}

// MaxDepth returns the deepest element nesting level under sel.
func MaxDepth(sel *goquery.Selection) int {
	max := 0
	for _, n := range sel.Nodes {
		if d := nodeDepth(n, 0); d > max {
			max = d
		}
	}
	return max
}

func nodeDepth(n *html.Node, depth int) int {
	max := depth
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if d := nodeDepth(c, depth+1); d > max {
			max = d
		}
	}
	return max
}
