package analyzer

import (
	"time"

	"github.com/russellbomer/domsift/internal/container"
	"github.com/russellbomer/domsift/internal/fields"
	"github.com/russellbomer/domsift/internal/framework"
	"github.com/russellbomer/domsift/internal/pagination"
)

// Report is the full analysis output for one document. It is a plain
// nested value structure so downstream tools can consume it as JSON or
// YAML without importing the analyzer packages.
type Report struct {
	AnalysisID  string                `json:"analysis_id" yaml:"analysis_id"`
	AnalyzedAt  time.Time             `json:"analyzed_at" yaml:"analyzed_at"`
	DurationMS  int64                 `json:"duration_ms" yaml:"duration_ms"`
	Frameworks  []framework.Detection `json:"frameworks" yaml:"frameworks"`
	Containers  []container.Candidate `json:"containers" yaml:"containers"`
	Suggestions Suggestions           `json:"suggestions" yaml:"suggestions"`
	Metadata    Metadata              `json:"metadata" yaml:"metadata"`
	Statistics  Statistics            `json:"statistics" yaml:"statistics"`
}

// Suggestions gathers the orchestrator's extraction proposals.
type Suggestions struct {
	BestContainer        *container.Candidate           `json:"best_container,omitempty" yaml:"best_container,omitempty"`
	ItemSelector         string                         `json:"item_selector,omitempty" yaml:"item_selector,omitempty"`
	FieldCandidates      []fields.Candidate             `json:"field_candidates" yaml:"field_candidates"`
	PaginationCandidates []pagination.NextPageCandidate `json:"pagination_candidates" yaml:"pagination_candidates"`
	InfiniteScroll       pagination.InfiniteScroll      `json:"infinite_scroll" yaml:"infinite_scroll"`
	FrameworkHint        string                         `json:"framework_hint,omitempty" yaml:"framework_hint,omitempty"`
}

// Metadata holds page-level descriptors extracted from head elements.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Canonical   string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	Charset     string `json:"charset,omitempty" yaml:"charset,omitempty"`
	Generator   string `json:"generator,omitempty" yaml:"generator,omitempty"`
	OGType      string `json:"og_type,omitempty" yaml:"og_type,omitempty"`
	OGTitle     string `json:"og_title,omitempty" yaml:"og_title,omitempty"`
	OGImage     string `json:"og_image,omitempty" yaml:"og_image,omitempty"`
	HasFavicon  bool   `json:"has_favicon" yaml:"has_favicon"`
}

// Statistics holds document-wide counts.
type Statistics struct {
	Elements    int `json:"elements" yaml:"elements"`
	Links       int `json:"links" yaml:"links"`
	Images      int `json:"images" yaml:"images"`
	Forms       int `json:"forms" yaml:"forms"`
	Scripts     int `json:"scripts" yaml:"scripts"`
	Stylesheets int `json:"stylesheets" yaml:"stylesheets"`
	IFrames     int `json:"iframes" yaml:"iframes"`
	TextLength  int `json:"text_length" yaml:"text_length"`
	DOMDepth    int `json:"dom_depth" yaml:"dom_depth"`
}
