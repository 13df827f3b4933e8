package container

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/selector"
)

// Generalization limits.
const (
	// minIDPrefixLen is the shortest shared ID prefix worth generalizing on.
	minIDPrefixLen = 4
	// maxSampledForClasses bounds how many items are inspected for shared
	// stable classes.
	maxSampledForClasses = 8
	// explosionFloor is the absolute match-count ceiling below which the
	// proportional bound does not apply.
	explosionFloor = 500
	// explosionFactor scales the original item count into the match ceiling.
	explosionFactor = 8
)

// GeneralizeItemSelector widens the best candidate's child selector so it
// also covers equivalent sibling containers (paginated sections, ID-suffixed
// list shards). Candidates are tried from least to most general; the first
// one whose live match count stays within [ItemCount, max(500, 8*ItemCount)]
// wins. When nothing qualifies the original selector is returned unchanged.
func (d *Detector) GeneralizeItemSelector(doc *dom.Document, best Candidate) string {
	origCount := best.ItemCount
	limit := explosionFloor
	if scaled := explosionFactor * origCount; scaled > limit {
		limit = scaled
	}

	for _, cand := range d.generalizationCandidates(doc, best) {
		if cand == "" || cand == best.ChildSelector {
			continue
		}
		count := doc.Count(cand)
		if count >= origCount && count <= limit {
			d.log.Debug("generalized item selector",
				"original", best.ChildSelector, "generalized", cand, "count", count)
			return cand
		}
	}
	return best.ChildSelector
}

// generalizationCandidates lists widening attempts in preference order.
func (d *Detector) generalizationCandidates(doc *dom.Document, best Candidate) []string {
	var out []string

	if prefixed := d.idPrefixSelector(doc, best); prefixed != "" {
		out = append(out, prefixed)
	}

	if simplified := selector.Simplify(best.ContainerSelector); simplified != "" {
		out = append(out, simplified+" > "+best.ChildTag)
	}

	out = append(out, d.sharedClassSelectors(doc, best)...)
	out = append(out, best.ChildTag)
	return out
}

// idPrefixSelector builds an attribute-prefix selector when at least two
// sibling containers share an ID prefix (e.g. "section-1", "section-2").
func (d *Detector) idPrefixSelector(doc *dom.Document, best Candidate) string {
	containers, ok := doc.Query(best.ContainerSelector)
	if !ok || containers.Length() == 0 {
		return ""
	}
	container := containers.First()
	ownID, hasID := container.Attr("id")
	if !hasID || ownID == "" {
		return ""
	}

	prefix := ownID
	shared := 1
	container.Siblings().Each(func(_ int, sib *goquery.Selection) {
		if dom.NodeTag(sib) != best.ContainerTag {
			return
		}
		sibID, ok := sib.Attr("id")
		if !ok || sibID == "" {
			return
		}
		if p := commonPrefix(prefix, sibID); len(p) >= minIDPrefixLen {
			prefix = p
			shared++
		}
	})

	if shared < 2 || len(prefix) < minIDPrefixLen {
		return ""
	}
	return fmt.Sprintf("[id^=%q] > %s", prefix, best.ChildTag)
}

// sharedClassSelectors builds tag.class selectors for stable classes
// present on at least half of the sampled items.
func (d *Detector) sharedClassSelectors(doc *dom.Document, best Candidate) []string {
	items, ok := doc.Query(best.ChildSelector)
	if !ok {
		return nil
	}

	sampled := 0
	classCounts := make(map[string]int)
	var order []string
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if sampled >= maxSampledForClasses {
			return false
		}
		sampled++
		for _, c := range selector.StableClasses(dom.Classes(item)) {
			if classCounts[c] == 0 {
				order = append(order, c)
			}
			classCounts[c]++
		}
		return true
	})
	if sampled == 0 {
		return nil
	}

	var out []string
	for _, c := range order {
		if classCounts[c]*2 >= sampled {
			out = append(out, best.ChildTag+"."+c)
		}
	}
	return out
}

// commonPrefix returns the longest common leading substring of a and b.
func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return strings.TrimRight(a[:i], "-_")
}
