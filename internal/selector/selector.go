// Package selector synthesizes stable CSS selectors for DOM nodes.
// Selectors prefer markers that survive page rebuilds: IDs, then class
// tokens that do not look build-generated, then positional fallbacks.
package selector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
)

// Class/ID prefixes emitted by CSS-in-JS and carousel libraries. Tokens
// with these prefixes change between builds and are never selector-safe.
var dynamicPrefixes = []string{"css-", "sc-", "jsx-", "emotion-", "slick-"}

var (
	// digitRunRE matches hash-like runs of four or more digits.
	digitRunRE = regexp.MustCompile(`\d{4,}`)
	// numericSuffixRE matches generated numeric suffixes like "col-937".
	numericSuffixRE = regexp.MustCompile(`\d{3,}$`)
	// yearTokenRE matches year-like runs used by Simplify to generalize
	// selectors derived from one timestamped instance.
	yearTokenRE = regexp.MustCompile(`(19|20)\d{2}`)
	// nthOfTypeRE matches the positional pseudo-class added as a fallback.
	nthOfTypeRE = regexp.MustCompile(`:nth-of-type\(\d+\)`)
	// plainTokenRE accepts tokens usable unescaped in a selector. Utility
	// classes like "md:flex" or "w-1/2" carry CSS metacharacters and would
	// make the whole selector fail to compile.
	plainTokenRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// IsDynamicToken reports whether a class or id token is unsafe to use in
// a selector: it looks build-generated, or it carries characters that
// would need CSS escaping.
func IsDynamicToken(token string) bool {
	if token == "" || strings.HasPrefix(token, "_") {
		return true
	}
	if !plainTokenRE.MatchString(token) {
		return true
	}
	lower := strings.ToLower(token)
	for _, prefix := range dynamicPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if digitRunRE.MatchString(token) {
		return true
	}
	if numericSuffixRE.MatchString(token) {
		return true
	}
	return false
}

// StableClasses filters a class list down to the tokens that pass the
// dynamic-token filter, preserving order.
func StableClasses(classes []string) []string {
	var stable []string
	for _, c := range classes {
		if !IsDynamicToken(c) {
			stable = append(stable, c)
		}
	}
	return stable
}

// Build produces a CSS selector for the first node of sel, walking
// ancestors up to root (or the document root when root is nil). Each
// level contributes its most stable marker; an ID short-circuits the
// walk since IDs are page-unique in practice. Build is total: detached
// or empty input degrades to the bare tag name.
func Build(sel, root *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}

	var parts []string
	cur := sel.First()
	for cur.Length() > 0 {
		if atRoot(cur, root) {
			break
		}
		tag := dom.NodeTag(cur)
		if tag == "" || tag == "html" || tag == "body" || tag == "#document" {
			break
		}

		if id, ok := cur.Attr("id"); ok && isStableID(id) {
			parts = append([]string{"#" + id}, parts...)
			break
		}

		parts = append([]string{levelMarker(cur, tag)}, parts...)
		cur = cur.Parent()
	}

	if len(parts) == 0 {
		return dom.NodeTag(sel)
	}
	return strings.Join(parts, " ")
}

// levelMarker picks the marker for one ancestor level: a stable class
// when one exists, otherwise a positional fallback when the node has
// same-tag siblings, otherwise the bare tag.
func levelMarker(cur *goquery.Selection, tag string) string {
	if stable := StableClasses(dom.Classes(cur)); len(stable) > 0 {
		return tag + "." + stable[0]
	}
	if cur.Siblings().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return dom.NodeTag(s) == tag
	}).Length() > 0 {
		return tag + ":nth-of-type(" + strconv.Itoa(dom.NthOfTypeIndex(cur)) + ")"
	}
	return tag
}

// atRoot reports whether cur is the synthesis boundary node.
func atRoot(cur, root *goquery.Selection) bool {
	if root == nil || root.Length() == 0 || cur.Length() == 0 {
		return false
	}
	return cur.Nodes[0] == root.Nodes[0]
}

// isStableID rejects empty, whitespace-bearing, and build-generated IDs.
func isStableID(id string) bool {
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return false
	}
	return !IsDynamicToken(id)
}
