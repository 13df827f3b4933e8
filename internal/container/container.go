// Package container finds DOM subtrees that look like repeated item
// lists: parents whose direct children repeat the same tag with real
// content, ranked by how likely they are to hold the page's data.
package container

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/logger"
	"github.com/russellbomer/domsift/internal/selector"
)

// Detection limits.
const (
	// MinItems is the minimum number of same-tag children for a group to
	// count as a repeated list.
	MinItems = 3
	// MaxCandidates caps how many candidates Find returns.
	MaxCandidates = 10
	// minMeaningfulTextLen is the trimmed text length above which a child
	// counts as meaningful without further checks.
	minMeaningfulTextLen = 15
	// contentScoreThreshold marks a candidate as likely real content.
	contentScoreThreshold = 50
	// sampleTextLimit bounds the SampleText field.
	sampleTextLimit = 100
	// HintBoost is the content-score bonus for a candidate whose items
	// match a detected framework's item selector hint.
	HintBoost = 15
)

// candidateParentTags is the allow-list of tags scanned for item lists.
var candidateParentTags = []string{"div", "section", "article", "ul", "ol", "main", "aside"}

// boilerplateTokens excludes chrome and noise containers by substring
// match against class and id. Short tokens that would false-match real
// content words live in boilerplateExact instead.
var boilerplateTokens = []string{
	"header", "footer", "navbar", "nav-", "-nav", "menu", "sidebar",
	"breadcrumb", "banner", "cookie", "popup", "modal", "advert",
	"social", "share-", "widget", "skip-link",
}

// boilerplateExact matches whole class/id tokens only.
var boilerplateExact = map[string]bool{
	"nav": true,
	"ad":  true,
	"ads": true,
}

// contentKeywords signal that a container carries listed data.
var contentKeywords = []string{
	"post", "article", "item", "card", "product", "entry", "story",
	"news", "result", "listing", "feed", "blog", "grid", "content",
}

// semanticContainerTags are tags whose meaning already implies a list.
var semanticContainerTags = map[string]bool{
	"ul": true, "ol": true, "main": true, "section": true, "article": true,
}

// semanticChildTags are child tags that imply a discrete item.
var semanticChildTags = map[string]bool{
	"article": true, "li": true,
}

// Candidate is one hypothesized item-list container. ItemCount always
// reflects a live re-query of ChildSelector at construction time.
type Candidate struct {
	ContainerSelector string `json:"container_selector" yaml:"container_selector"`
	ChildSelector     string `json:"child_selector" yaml:"child_selector"`
	ItemCount         int    `json:"item_count" yaml:"item_count"`
	ContentScore      int    `json:"content_score" yaml:"content_score"`
	SampleText        string `json:"sample_text" yaml:"sample_text"`
	ContainerTag      string `json:"container_tag" yaml:"container_tag"`
	ChildTag          string `json:"child_tag" yaml:"child_tag"`
	IsContent         bool   `json:"is_content" yaml:"is_content"`
}

// Detector scans a document for repeated-item containers.
type Detector struct {
	log logger.Interface
}

// NewDetector creates a container detector. A nil logger falls back to
// the no-op logger.
func NewDetector(log logger.Interface) *Detector {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Detector{log: log}
}

// Find returns up to MaxCandidates ranked container candidates. Selector
// evaluation errors skip the affected candidate and never abort the scan.
func (d *Detector) Find(doc *dom.Document) []Candidate {
	byChildSelector := make(map[string]Candidate)

	for _, tag := range candidateParentTags {
		parents, ok := doc.Query(tag)
		if !ok {
			continue
		}
		parents.Each(func(_ int, parent *goquery.Selection) {
			if isBoilerplate(parent) {
				return
			}
			for _, cand := range d.candidatesForParent(doc, parent, tag) {
				prev, seen := byChildSelector[cand.ChildSelector]
				if !seen || cand.ContentScore > prev.ContentScore {
					byChildSelector[cand.ChildSelector] = cand
				}
			}
		})
	}

	candidates := make([]Candidate, 0, len(byChildSelector))
	for _, c := range byChildSelector {
		candidates = append(candidates, c)
	}
	sortCandidates(candidates)

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	d.log.Debug("container scan complete", "candidates", len(candidates))
	return candidates
}

// ApplyHints boosts candidates whose items match one of a detected
// framework's item selector hints and re-ranks the list in place. A hint
// that does not compile matches nothing.
func (d *Detector) ApplyHints(doc *dom.Document, candidates []Candidate, hints []string) []Candidate {
	if len(hints) == 0 || len(candidates) == 0 {
		return candidates
	}

	for i := range candidates {
		items, ok := doc.Query(candidates[i].ChildSelector)
		if !ok || items.Length() == 0 {
			continue
		}
		first := items.First()
		for _, hint := range hints {
			if dom.Matches(first, hint) {
				candidates[i].ContentScore += HintBoost
				candidates[i].IsContent = candidates[i].ContentScore >= contentScoreThreshold
				d.log.Debug("boosted candidate by framework hint",
					"selector", candidates[i].ChildSelector, "hint", hint)
				break
			}
		}
	}
	sortCandidates(candidates)
	return candidates
}

// sortCandidates orders candidates by score, then item count, then child
// selector so equal scores stay deterministic.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ContentScore != candidates[j].ContentScore {
			return candidates[i].ContentScore > candidates[j].ContentScore
		}
		if candidates[i].ItemCount != candidates[j].ItemCount {
			return candidates[i].ItemCount > candidates[j].ItemCount
		}
		return candidates[i].ChildSelector < candidates[j].ChildSelector
	})
}

// candidatesForParent builds candidates for every qualifying direct-child
// tag group under parent.
func (d *Detector) candidatesForParent(doc *dom.Document, parent *goquery.Selection, parentTag string) []Candidate {
	groups := make(map[string][]*goquery.Selection)
	parent.Children().Each(func(_ int, child *goquery.Selection) {
		childTag := dom.NodeTag(child)
		if childTag == "" {
			return
		}
		groups[childTag] = append(groups[childTag], child)
	})

	var out []Candidate
	for childTag, children := range groups {
		if len(children) < MinItems {
			continue
		}
		meaningful := 0
		for _, child := range children {
			if hasMeaningfulContent(child) {
				meaningful++
			}
		}
		if meaningful < MinItems {
			continue
		}

		cand, ok := d.buildCandidate(doc, parent, parentTag, childTag, children)
		if ok {
			out = append(out, cand)
		}
	}
	return out
}

// buildCandidate synthesizes selectors for one (parent, childTag) group
// and re-queries the document for the live item count.
func (d *Detector) buildCandidate(doc *dom.Document, parent *goquery.Selection, parentTag, childTag string, children []*goquery.Selection) (Candidate, bool) {
	containerSelector := selector.Build(parent, nil)
	if containerSelector == "" {
		return Candidate{}, false
	}
	childSelector := containerSelector + " > " + childTag

	// ItemCount is always the live count, never the group size.
	matched, ok := doc.Query(childSelector)
	if !ok {
		d.log.Debug("skipping candidate, selector did not evaluate", "selector", childSelector)
		return Candidate{}, false
	}
	itemCount := matched.Length()
	if itemCount < MinItems {
		return Candidate{}, false
	}

	score := contentScore(parent, parentTag, childTag, children)
	return Candidate{
		ContainerSelector: containerSelector,
		ChildSelector:     childSelector,
		ItemCount:         itemCount,
		ContentScore:      score,
		SampleText:        dom.Truncate(dom.CompactText(children[0]), sampleTextLimit),
		ContainerTag:      parentTag,
		ChildTag:          childTag,
		IsContent:         score >= contentScoreThreshold,
	}, true
}

// contentScore rates how likely a child group is real listed content.
func contentScore(parent *goquery.Selection, parentTag, childTag string, children []*goquery.Selection) int {
	score := 0

	classID := strings.ToLower(parent.AttrOr("class", "") + " " + parent.AttrOr("id", ""))
	for _, kw := range contentKeywords {
		if strings.Contains(classID, kw) {
			score += 50
			break
		}
	}
	if semanticContainerTags[parentTag] {
		score += 30
	}
	if semanticChildTags[childTag] {
		score += 20
	}

	withLink, withImage := 0, 0
	for _, child := range children {
		if child.Find("a").Length() > 0 {
			withLink++
		}
		if child.Find("img").Length() > 0 {
			withImage++
		}
	}
	if withLink*2 >= len(children) {
		score += 20
	}
	if withImage*10 >= len(children)*3 {
		score += 15
	}
	return score
}

// hasMeaningfulContent reports whether a child element carries enough
// content to be an item: a heading or paragraph inside, a minimum of
// free text, or text that is not dominated by link labels.
func hasMeaningfulContent(child *goquery.Selection) bool {
	if child.Find("h1, h2, h3, h4, h5, h6, p").Length() > 0 {
		return true
	}
	text := dom.CompactText(child)
	if len(text) >= minMeaningfulTextLen {
		return true
	}
	if len(text) == 0 {
		return false
	}
	linkText := strings.Join(strings.Fields(child.Find("a").Text()), " ")
	// Mostly-link children are navigation, not data items.
	return len(linkText)*5 < len(text)*4
}

// isBoilerplate reports whether a parent's class or id marks it as page
// chrome (navigation, ads, cookie banners, ...). This runs before any
// other check: it is the cheapest, highest-precision filter.
func isBoilerplate(parent *goquery.Selection) bool {
	class := strings.ToLower(parent.AttrOr("class", ""))
	id := strings.ToLower(parent.AttrOr("id", ""))
	combined := class + " " + id
	for _, tok := range boilerplateTokens {
		if strings.Contains(combined, tok) {
			return true
		}
	}
	for _, tok := range strings.Fields(combined) {
		if boilerplateExact[tok] {
			return true
		}
	}
	return false
}
