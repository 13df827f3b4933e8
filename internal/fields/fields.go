// Package fields proposes typed field selectors (title, link, date, ...)
// for a representative list item, and merges proposals across sibling
// items by support voting.
package fields

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/framework"
)

// Limits on sampling and output.
const (
	// MaxSampledItems bounds how many item instances GeneralizeOver
	// inspects per container.
	MaxSampledItems = 25
	// sampleLimit bounds the Sample field.
	sampleLimit = 50
)

// Candidate is one proposed field extraction rule.
type Candidate struct {
	Name      string `json:"name" yaml:"name"`
	Selector  string `json:"selector" yaml:"selector"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Sample    string `json:"sample" yaml:"sample"`
	Support   int    `json:"support" yaml:"support"`
	Count     int    `json:"count" yaml:"count"`
}

// pattern is one selector attempt for a field type.
type pattern struct {
	selector  string
	attribute string
}

// fieldPatterns is the generic per-field pattern table, tried in order;
// the first pattern yielding a non-empty value wins for an item.
var fieldPatterns = []struct {
	name     string
	patterns []pattern
}{
	{"title", []pattern{
		{selector: "h1"}, {selector: "h2"}, {selector: "h3"}, {selector: "h4"},
		{selector: ".title"}, {selector: ".entry-title"}, {selector: ".post-title"},
		{selector: ".headline"}, {selector: "[itemprop='name']"},
		{selector: ".name"}, {selector: "a"},
	}},
	{"link", []pattern{
		{selector: "a[href]", attribute: "href"},
		{selector: "[itemprop='url']", attribute: "href"},
	}},
	{"image", []pattern{
		{selector: "img[src]", attribute: "src"},
		{selector: "img[data-src]", attribute: "data-src"},
		{selector: "source[srcset]", attribute: "srcset"},
	}},
	{"description", []pattern{
		{selector: "p"}, {selector: ".description"}, {selector: ".summary"},
		{selector: ".excerpt"}, {selector: ".entry-summary"},
		{selector: "[itemprop='description']"},
	}},
	{"date", []pattern{
		{selector: "time[datetime]", attribute: "datetime"},
		{selector: "time"},
		{selector: ".date"}, {selector: ".published"}, {selector: ".post-date"},
		{selector: ".timestamp"},
		{selector: "[itemprop='datePublished']", attribute: "content"},
	}},
	{"author", []pattern{
		{selector: ".author"}, {selector: ".byline"},
		{selector: "[rel='author']"}, {selector: "[itemprop='author']"},
	}},
	{"price", []pattern{
		{selector: ".price"},
		{selector: "[itemprop='price']", attribute: "content"},
		{selector: ".amount"}, {selector: ".cost"},
		{selector: "[data-price]", attribute: "data-price"},
	}},
	{"category", []pattern{
		{selector: ".category"}, {selector: ".cat-links a"},
		{selector: "[rel='category']"},
	}},
	{"tags", []pattern{
		{selector: ".tags a"}, {selector: ".tag-list a"}, {selector: "[rel='tag']"},
	}},
}

// Suggest proposes at most one candidate per field type for a single item
// element. When a framework detection is supplied, that framework's field
// mappings are tried before the generic table and win on conflict. Any
// selector-evaluation failure counts as no match for that pattern only.
func Suggest(item *goquery.Selection, fw *framework.Detection) []Candidate {
	if item == nil || item.Length() == 0 {
		return nil
	}

	var mappings map[string][]framework.FieldPattern
	if fw != nil {
		mappings = framework.FieldMappings(fw.Name)
	}

	var out []Candidate
	for _, field := range fieldPatterns {
		if cand, ok := suggestField(item, field.name, mappings[field.name], field.patterns); ok {
			out = append(out, cand)
		}
	}
	return out
}

// suggestField tries framework patterns first, then generic ones, and
// returns the first pattern that extracts a non-empty value.
func suggestField(item *goquery.Selection, name string, fwPatterns []framework.FieldPattern, generic []pattern) (Candidate, bool) {
	for _, fp := range fwPatterns {
		if cand, ok := tryPattern(item, name, fp.Selector, fp.Attribute); ok {
			return cand, true
		}
	}
	for _, p := range generic {
		if cand, ok := tryPattern(item, name, p.selector, p.attribute); ok {
			return cand, true
		}
	}
	return Candidate{}, false
}

// tryPattern evaluates one pattern against an item. Attribute patterns
// extract the attribute value; others the trimmed text content.
func tryPattern(item *goquery.Selection, name, sel, attr string) (Candidate, bool) {
	matched, ok := dom.Query(item, sel)
	if !ok || matched.Length() == 0 {
		return Candidate{}, false
	}

	var value string
	if attr != "" {
		v, has := matched.First().Attr(attr)
		if !has {
			return Candidate{}, false
		}
		value = strings.TrimSpace(v)
	} else {
		value = dom.CompactText(matched.First())
	}
	if value == "" {
		return Candidate{}, false
	}

	return Candidate{
		Name:      name,
		Selector:  sel,
		Attribute: attr,
		Sample:    dom.Truncate(value, sampleLimit),
		Support:   1,
		Count:     matched.Length(),
	}, true
}

// candidateKey dedupes candidates across items.
type candidateKey struct {
	name, selector, attribute string
}

// GeneralizeOver merges per-item suggestions across up to limit item
// instances; a limit of zero or less falls back to MaxSampledItems.
// Callers sampling across equivalent containers pass their own, larger
// bound. Support counts the distinct items contributing an exact
// (name, selector, attribute) triple; Count accumulates match counts.
// Results are ranked by (Support desc, Count desc) and reduced to one
// selector per field name, first occurrence winning.
func GeneralizeOver(items []*goquery.Selection, fw *framework.Detection, limit int) []Candidate {
	if limit <= 0 {
		limit = MaxSampledItems
	}
	if len(items) > limit {
		items = items[:limit]
	}

	merged := make(map[candidateKey]*Candidate)
	var order []candidateKey
	for _, item := range items {
		for _, cand := range Suggest(item, fw) {
			key := candidateKey{cand.Name, cand.Selector, cand.Attribute}
			if prev, seen := merged[key]; seen {
				prev.Support++
				prev.Count += cand.Count
				continue
			}
			c := cand
			merged[key] = &c
			order = append(order, key)
		}
	}

	ranked := make([]Candidate, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, *merged[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Support != ranked[j].Support {
			return ranked[i].Support > ranked[j].Support
		}
		return ranked[i].Count > ranked[j].Count
	})

	seen := make(map[string]bool, len(ranked))
	out := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
