package pagination

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
)

// Infinite-scroll signal weights.
const (
	libraryMarkerWeight    = 25
	observerWeight         = 25
	noPaginationWeight     = 20
	scrollHandlerWeight    = 20
	loadingIndicatorWeight = 15
	dataAttributeWeight    = 15

	detectionConfidence = 0.3
)

// scrollLibraryMarkers are markup substrings left by infinite-scroll
// libraries and framework components.
var scrollLibraryMarkers = []string{
	"infinite-scroll", "infinitescroll", "react-infinite",
	"vue-infinite", "infinite-loading",
}

// InfiniteScroll is the result of the infinite-scroll heuristic.
type InfiniteScroll struct {
	Detected   bool     `json:"detected" yaml:"detected"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Signals    []string `json:"signals" yaml:"signals"`
}

// DetectInfiniteScroll scores markup and script signals that suggest
// items load on scroll instead of via pagination links.
func DetectInfiniteScroll(doc *dom.Document) InfiniteScroll {
	score := 0
	var signals []string

	scripts := scriptText(doc)
	markup := strings.ToLower(pageMarkup(doc))

	for _, marker := range scrollLibraryMarkers {
		if strings.Contains(markup, marker) || strings.Contains(scripts, marker) {
			score += libraryMarkerWeight
			signals = append(signals, "library:"+marker)
			break
		}
	}

	if strings.Contains(scripts, "intersectionobserver") {
		score += observerWeight
		signals = append(signals, "intersection-observer")
	}

	if !hasPaginationAnchors(doc) {
		score += noPaginationWeight
		signals = append(signals, "no-pagination-links")
	}

	if strings.Contains(scripts, "addeventlistener('scroll'") ||
		strings.Contains(scripts, `addeventlistener("scroll"`) ||
		strings.Contains(scripts, "onscroll") {
		score += scrollHandlerWeight
		signals = append(signals, "scroll-handler")
	}

	if doc.Count("[class*='loading'], .spinner, .loader") > 0 {
		score += loadingIndicatorWeight
		signals = append(signals, "loading-indicator")
	}

	if doc.Count("[data-infinite], [data-infinite-scroll], [data-load-more], [data-next-page]") > 0 {
		score += dataAttributeWeight
		signals = append(signals, "data-attribute")
	}

	confidence := float64(score) / 100
	if confidence > 1 {
		confidence = 1
	}
	return InfiniteScroll{
		Detected:   confidence > detectionConfidence,
		Confidence: confidence,
		Signals:    signals,
	}
}

// hasPaginationAnchors reports whether the page carries traditional
// pagination links.
func hasPaginationAnchors(doc *dom.Document) bool {
	return doc.Count(".pagination a, .pager a, a[rel='next'], .page-numbers") > 0
}

// scriptText concatenates inline script bodies, lowercased.
func scriptText(doc *dom.Document) string {
	scripts, ok := doc.Query("script")
	if !ok {
		return ""
	}
	var sb strings.Builder
	scripts.Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
		sb.WriteByte('\n')
	})
	return strings.ToLower(sb.String())
}

// pageMarkup renders the document body back to HTML for substring scans.
func pageMarkup(doc *dom.Document) string {
	h, err := goquery.OuterHtml(doc.Root())
	if err != nil {
		return ""
	}
	return h
}
