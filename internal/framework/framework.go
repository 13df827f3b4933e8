// Package framework fingerprints the CMS or front-end framework that
// produced a page by scoring weighted markup signals. Profiles are held
// in a fixed, ordered registry: more specific frameworks are registered
// first, and registry position breaks score ties.
package framework

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DetectionThreshold is the minimum score for DetectBest to commit to a
// framework. Below it, callers must treat the page as framework-unknown.
const DetectionThreshold = 40

// maxScore caps a profile's score; signal weights saturate, never overflow.
const maxScore = 100

// Signal maps a lowercase markup substring to a positive weight.
type Signal struct {
	Pattern string
	Weight  int
}

// FieldPattern is one framework-specific field selector. Attribute, when
// set, names the attribute to extract instead of text content.
type FieldPattern struct {
	Selector  string
	Attribute string
}

// Profile describes one framework's fingerprint: document-level signals,
// optional signals scoped to a candidate item element, selector hints for
// item lists, and field-extraction mappings.
type Profile struct {
	Name              string
	Signals           []Signal
	ItemSignals       []Signal
	ItemSelectorHints []string
	FieldMappings     map[string][]FieldPattern
}

// Detection is one scored framework match.
type Detection struct {
	Name       string   `json:"name" yaml:"name"`
	Score      int      `json:"score" yaml:"score"`
	Indicators []string `json:"indicators" yaml:"indicators"`
}

// DetectOne scores a single profile against raw markup, optionally with
// an item element for item-scoped bonus signals. The result is clamped
// to [0, maxScore]. A profile that panics scores 0.
func DetectOne(p Profile, rawHTML string, item *goquery.Selection) int {
	score, _ := detectOne(p, rawHTML, item)
	return score
}

// detectOne returns the clamped score and the matched signal patterns.
func detectOne(p Profile, rawHTML string, item *goquery.Selection) (score int, indicators []string) {
	// One misbehaving profile must never abort overall detection.
	defer func() {
		if recover() != nil {
			score = 0
			indicators = nil
		}
	}()

	lower := strings.ToLower(rawHTML)
	for _, sig := range p.Signals {
		if strings.Contains(lower, sig.Pattern) {
			score += sig.Weight
			indicators = append(indicators, sig.Pattern)
		}
	}

	if item != nil && item.Length() > 0 && len(p.ItemSignals) > 0 {
		itemHTML, err := goquery.OuterHtml(item)
		if err == nil {
			itemLower := strings.ToLower(itemHTML)
			for _, sig := range p.ItemSignals {
				if strings.Contains(itemLower, sig.Pattern) {
					score += sig.Weight
					indicators = append(indicators, sig.Pattern)
				}
			}
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score, indicators
}

// DetectAll scores every registered profile and returns those with a
// positive score, sorted by score descending. Equal scores keep registry
// order, so more specific profiles win ties.
func DetectAll(rawHTML string, item *goquery.Selection) []Detection {
	var results []Detection
	for _, p := range registry {
		score, indicators := detectOne(p, rawHTML, item)
		if score > 0 {
			results = append(results, Detection{
				Name:       p.Name,
				Score:      score,
				Indicators: indicators,
			})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// DetectBest returns the top-scoring framework when its score reaches
// DetectionThreshold. The second return value is false when no profile
// qualifies and the page should be treated as framework-unknown.
func DetectBest(rawHTML string, item *goquery.Selection) (Detection, bool) {
	all := DetectAll(rawHTML, item)
	if len(all) == 0 || all[0].Score < DetectionThreshold {
		return Detection{}, false
	}
	return all[0], true
}

// ProfileByName returns the registered profile with the given name.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range registry {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// ItemSelectorHints returns the registered item selector hints for a
// framework, or nil when the framework is unknown.
func ItemSelectorHints(name string) []string {
	p, ok := ProfileByName(name)
	if !ok {
		return nil
	}
	return p.ItemSelectorHints
}

// FieldMappings returns the registered field mappings for a framework,
// or nil when the framework is unknown.
func FieldMappings(name string) map[string][]FieldPattern {
	p, ok := ProfileByName(name)
	if !ok {
		return nil
	}
	return p.FieldMappings
}
