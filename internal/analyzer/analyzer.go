// Package analyzer orchestrates the structure analysis of one HTML
// document: framework fingerprinting, container detection, field
// suggestion, pagination heuristics, metadata, and statistics, combined
// into a single report.
package analyzer

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/russellbomer/domsift/internal/container"
	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/fields"
	"github.com/russellbomer/domsift/internal/framework"
	"github.com/russellbomer/domsift/internal/logger"
	"github.com/russellbomer/domsift/internal/pagination"
)

// MaxItemsAcrossContainers bounds how many item instances are gathered
// from a generalized selector spanning equivalent containers.
const MaxItemsAcrossContainers = 75

// Analyzer runs the full analysis pipeline. It is stateless across calls
// and safe to reuse; concurrent use on different documents needs no
// coordination since no mutable state is shared.
type Analyzer struct {
	log        logger.Interface
	containers *container.Detector
}

// New creates an Analyzer. A nil logger falls back to the no-op logger.
func New(log logger.Interface) *Analyzer {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Analyzer{
		log:        log,
		containers: container.NewDetector(log),
	}
}

// Analyze parses raw HTML and produces the full report. Bad or empty
// markup is not an error: the report degrades to empty sequences. The
// only error source is a failing document parse, which goquery reports
// for reader failures rather than malformed markup.
func (a *Analyzer) Analyze(rawHTML string) (*Report, error) {
	start := time.Now()
	report := &Report{
		AnalysisID: uuid.NewString(),
		AnalyzedAt: start.UTC(),
	}

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(rawHTML) == "" {
		report.DurationMS = time.Since(start).Milliseconds()
		return report, nil
	}

	report.Frameworks = framework.DetectAll(rawHTML, nil)
	report.Containers = a.containers.Find(doc)
	if len(report.Frameworks) > 0 && report.Frameworks[0].Score >= framework.DetectionThreshold {
		report.Containers = a.containers.ApplyHints(doc, report.Containers,
			framework.ItemSelectorHints(report.Frameworks[0].Name))
	}
	report.Metadata = extractMetadata(doc)
	report.Statistics = extractStatistics(doc)
	report.Suggestions = a.buildSuggestions(doc, report)

	report.DurationMS = time.Since(start).Milliseconds()
	a.log.Info("analysis complete",
		"analysis_id", report.AnalysisID,
		"frameworks", len(report.Frameworks),
		"containers", len(report.Containers),
		"duration_ms", report.DurationMS)
	return report, nil
}

// buildSuggestions assembles the extraction proposals from the ranked
// containers and the framework detections.
func (a *Analyzer) buildSuggestions(doc *dom.Document, report *Report) Suggestions {
	sug := Suggestions{
		PaginationCandidates: pagination.FindNextPageCandidates(doc),
		InfiniteScroll:       pagination.DetectInfiniteScroll(doc),
	}

	var detection *framework.Detection
	if len(report.Frameworks) > 0 && report.Frameworks[0].Score >= framework.DetectionThreshold {
		detection = &report.Frameworks[0]
		sug.FrameworkHint = detection.Name
	}

	if len(report.Containers) == 0 {
		return sug
	}

	best := report.Containers[0]
	sug.BestContainer = &best
	sug.ItemSelector = a.containers.GeneralizeItemSelector(doc, best)
	sug.FieldCandidates = fields.GeneralizeOver(
		a.sampleItems(doc, sug.ItemSelector, best), detection, MaxItemsAcrossContainers)
	return sug
}

// sampleItems gathers item instances for field suggestion: at most
// MaxItemsAcrossContainers matches of the generalized selector, falling
// back to the candidate's own child selector when the generalized one
// stopped matching.
func (a *Analyzer) sampleItems(doc *dom.Document, itemSelector string, best container.Candidate) []*goquery.Selection {
	matched, ok := doc.Query(itemSelector)
	if !ok || matched.Length() == 0 {
		matched, ok = doc.Query(best.ChildSelector)
		if !ok {
			return nil
		}
	}

	var items []*goquery.Selection
	matched.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(items) >= MaxItemsAcrossContainers {
			return false
		}
		items = append(items, item)
		return true
	})
	return items
}
