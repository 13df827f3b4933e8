// Package pagination scores anchors for "next page" likelihood and flags
// infinite-scroll pages from script and markup signals.
package pagination

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/selector"
)

// Scan limits and scoring weights.
const (
	// MaxAnchorsScanned bounds the anchor scan on pathological pages.
	MaxAnchorsScanned = 200
	// MaxCandidates caps the returned next-page candidates.
	MaxCandidates = 6
	// minScore discards weak anchors.
	minScore = 40

	relNextWeight     = 60
	textKeywordWeight = 40
	ariaKeywordWeight = 25
	classWeight       = 20
	testIDWeight      = 20
	arrowWeight       = 15
)

// nextKeywords match anchor text and aria-labels that announce paging.
var nextKeywords = []string{
	"next", "older", "more results", "load more", "show more",
	"next page", "older posts",
}

// classKeywords match class and data-testid values used for paging controls.
var classKeywords = []string{"next", "pagination", "pager", "load-more", "loadmore"}

// arrowGlyphs are directional glyphs common in paging links.
var arrowGlyphs = []string{"»", "›", "→", "⟩", "≫", ">>"}

// NextPageCandidate is one scored next-page anchor.
type NextPageCandidate struct {
	Selector string   `json:"selector" yaml:"selector"`
	Href     string   `json:"href" yaml:"href"`
	Text     string   `json:"text" yaml:"text"`
	Score    int      `json:"score" yaml:"score"`
	Hints    []string `json:"hints" yaml:"hints"`
}

// FindNextPageCandidates scans the first MaxAnchorsScanned anchors and
// returns up to MaxCandidates scored next-page links, best first.
func FindNextPageCandidates(doc *dom.Document) []NextPageCandidate {
	anchors, ok := doc.Query("a")
	if !ok {
		return nil
	}

	best := make(map[string]NextPageCandidate)
	var order []string
	scanned := 0
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if scanned >= MaxAnchorsScanned {
			return false
		}
		scanned++

		cand, ok := scoreAnchor(a)
		if !ok {
			return true
		}
		key := cand.Selector + "\x00" + cand.Href
		if prev, seen := best[key]; !seen || cand.Score > prev.Score {
			if !seen {
				order = append(order, key)
			}
			best[key] = cand
		}
		return true
	})

	out := make([]NextPageCandidate, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}

// scoreAnchor rates one anchor; anchors below minScore are dropped.
func scoreAnchor(a *goquery.Selection) (NextPageCandidate, bool) {
	score := 0
	var hints []string

	if rel, _ := a.Attr("rel"); strings.EqualFold(rel, "next") {
		score += relNextWeight
		hints = append(hints, "rel-next")
	}

	text := strings.ToLower(dom.CompactText(a))
	if containsAny(text, nextKeywords) {
		score += textKeywordWeight
		hints = append(hints, "text-keyword")
	}

	aria := strings.ToLower(a.AttrOr("aria-label", ""))
	if aria != "" && containsAny(aria, nextKeywords) {
		score += ariaKeywordWeight
		hints = append(hints, "aria-label")
	}

	class := strings.ToLower(a.AttrOr("class", ""))
	if containsAny(class, classKeywords) {
		score += classWeight
		hints = append(hints, "class-keyword")
	}

	testID := strings.ToLower(a.AttrOr("data-testid", ""))
	if testID != "" && containsAny(testID, classKeywords) {
		score += testIDWeight
		hints = append(hints, "testid-keyword")
	}

	if containsAny(text, arrowGlyphs) {
		score += arrowWeight
		hints = append(hints, "arrow-glyph")
	}

	if score < minScore {
		return NextPageCandidate{}, false
	}
	return NextPageCandidate{
		Selector: selector.Build(a, nil),
		Href:     a.AttrOr("href", ""),
		Text:     dom.Truncate(dom.CompactText(a), 80),
		Score:    score,
		Hints:    hints,
	}, true
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
