package analyzer

import (
	"strings"

	"github.com/russellbomer/domsift/internal/dom"
)

// extractMetadata pulls page-level descriptors from head elements.
func extractMetadata(doc *dom.Document) Metadata {
	md := Metadata{
		Title:       firstText(doc, "title"),
		Description: firstAttr(doc, "meta[name='description']", "content"),
		Canonical:   firstAttr(doc, "link[rel='canonical']", "href"),
		Language:    firstAttr(doc, "html", "lang"),
		Charset:     firstAttr(doc, "meta[charset]", "charset"),
		Generator:   firstAttr(doc, "meta[name='generator']", "content"),
		OGType:      firstAttr(doc, "meta[property='og:type']", "content"),
		OGTitle:     firstAttr(doc, "meta[property='og:title']", "content"),
		OGImage:     firstAttr(doc, "meta[property='og:image']", "content"),
	}
	md.HasFavicon = doc.Count("link[rel='icon'], link[rel='shortcut icon']") > 0
	return md
}

// extractStatistics counts document-wide structure.
func extractStatistics(doc *dom.Document) Statistics {
	return Statistics{
		Elements:    doc.Count("*"),
		Links:       doc.Count("a[href]"),
		Images:      doc.Count("img"),
		Forms:       doc.Count("form"),
		Scripts:     doc.Count("script"),
		Stylesheets: doc.Count("link[rel='stylesheet']"),
		IFrames:     doc.Count("iframe"),
		TextLength:  len(dom.CompactText(doc.Root())),
		DOMDepth:    dom.MaxDepth(doc.Root()),
	}
}

// firstText returns the trimmed text of the first match, or "".
func firstText(doc *dom.Document, sel string) string {
	matched, ok := doc.Query(sel)
	if !ok || matched.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(matched.First().Text())
}

// firstAttr returns an attribute of the first match, or "".
func firstAttr(doc *dom.Document, sel, attr string) string {
	matched, ok := doc.Query(sel)
	if !ok || matched.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(matched.First().AttrOr(attr, ""))
}
