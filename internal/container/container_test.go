package container_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russellbomer/domsift/internal/container"
	"github.com/russellbomer/domsift/internal/dom"
	"github.com/russellbomer/domsift/internal/framework"
)

const blogHTML = `<html><body>
<nav class="main-nav"><ul><li><a href="/">Home</a></li><li><a href="/about">About</a></li><li><a href="/contact">Contact</a></li></ul></nav>
<div class="post-list">
	<article class="post"><h2><a href="/alpha">Alpha post</a></h2><p>The first body paragraph.</p></article>
	<article class="post"><h2><a href="/beta">Beta post</a></h2><p>The second body paragraph.</p></article>
	<article class="post"><h2><a href="/gamma">Gamma post</a></h2><p>The third body paragraph.</p></article>
</div>
<footer class="site-footer"><p>All rights reserved.</p></footer>
</body></html>`

func mustParse(t *testing.T, rawHTML string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(rawHTML)
	require.NoError(t, err)
	return doc
}

func TestFind_BlogPostList(t *testing.T) {
	t.Parallel()

	d := container.NewDetector(nil)
	candidates := d.Find(mustParse(t, blogHTML))
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.Equal(t, "div.post-list > article", best.ChildSelector)
	assert.Equal(t, "article", best.ChildTag)
	assert.Equal(t, 3, best.ItemCount)
	assert.GreaterOrEqual(t, best.ContentScore, 50)
	assert.True(t, best.IsContent)

	// Navigation list items must not surface as a candidate.
	for _, c := range candidates {
		assert.NotEqual(t, "li", c.ChildTag, "nav items leaked: %+v", c)
	}
}

func TestFind_ClasslessProductGrid(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="product-grid">
		<div><img src="/1.jpg"><span>Walnut desk organizer</span><b>$25</b></div>
		<div><img src="/2.jpg"><span>Ceramic pour-over set</span><b>$40</b></div>
		<div><img src="/3.jpg"><span>Linen table runner</span><b>$18</b></div>
		<div><img src="/4.jpg"><span>Brass letter opener</span><b>$12</b></div>
	</div></body></html>`

	d := container.NewDetector(nil)
	candidates := d.Find(mustParse(t, page))
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.Equal(t, "div.product-grid > div", best.ChildSelector)
	assert.Equal(t, 4, best.ItemCount)
	assert.True(t, best.IsContent)
}

func TestFind_BoilerplateExcluded(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="sidebar">
		<article><h3>Related one</h3><p>Teaser text.</p></article>
		<article><h3>Related two</h3><p>Teaser text.</p></article>
		<article><h3>Related three</h3><p>Teaser text.</p></article>
	</div></body></html>`

	d := container.NewDetector(nil)
	assert.Empty(t, d.Find(mustParse(t, page)))
}

func TestFind_ExactTokenDoesNotFalseMatchSubstrings(t *testing.T) {
	t.Parallel()

	// "shadow-grid" contains "ad" only as a substring of another word; the
	// "ad" rule matches whole tokens, so this container must survive.
	page := `<html><body><div class="shadow-grid">
		<article><h3>Entry one</h3><p>Some body.</p></article>
		<article><h3>Entry two</h3><p>Some body.</p></article>
		<article><h3>Entry three</h3><p>Some body.</p></article>
	</div>
	<div class="ad">
		<article><h3>Promo one</h3><p>Buy now.</p></article>
		<article><h3>Promo two</h3><p>Buy now.</p></article>
		<article><h3>Promo three</h3><p>Buy now.</p></article>
	</div></body></html>`

	d := container.NewDetector(nil)
	candidates := d.Find(mustParse(t, page))
	require.Len(t, candidates, 1)
	assert.Equal(t, "div.shadow-grid > article", candidates[0].ChildSelector)
}

func TestFind_ItemCountIsLiveQueryCount(t *testing.T) {
	t.Parallel()

	// Two containers share the class, so the synthesized child selector
	// matches both. ItemCount must be the live match count, not the size
	// of the group the candidate was built from.
	page := `<html><body>
	<div class="feed">
		<article><h3>A</h3><p>First page item.</p></article>
		<article><h3>B</h3><p>First page item.</p></article>
		<article><h3>C</h3><p>First page item.</p></article>
	</div>
	<div class="feed">
		<article><h3>D</h3><p>Second page item.</p></article>
		<article><h3>E</h3><p>Second page item.</p></article>
		<article><h3>F</h3><p>Second page item.</p></article>
	</div>
	</body></html>`

	d := container.NewDetector(nil)
	candidates := d.Find(mustParse(t, page))
	require.Len(t, candidates, 1)
	assert.Equal(t, "div.feed > article", candidates[0].ChildSelector)
	assert.Equal(t, 6, candidates[0].ItemCount)
}

func TestFind_CapsCandidates(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 14; i++ {
		name := fmt.Sprintf("list%c", 'a'+i)
		fmt.Fprintf(&b, `<section class=%q>`, name)
		for j := 0; j < 3; j++ {
			fmt.Fprintf(&b, `<article><h3>Entry %d</h3><p>Body text for the entry.</p></article>`, j)
		}
		b.WriteString(`</section>`)
	}
	b.WriteString("</body></html>")

	d := container.NewDetector(nil)
	candidates := d.Find(mustParse(t, b.String()))
	assert.Len(t, candidates, container.MaxCandidates)
}

func TestFind_UtilityClassContainerStillYieldsCandidate(t *testing.T) {
	t.Parallel()

	// Every class on the parent needs CSS escaping; the synthesized
	// selector must fall back to safe markers instead of failing to
	// compile and dropping the candidate.
	page := `<html><body><div class="md:flex w-1/2">
		<article><h3>One</h3><p>Body text.</p></article>
		<article><h3>Two</h3><p>Body text.</p></article>
		<article><h3>Three</h3><p>Body text.</p></article>
	</div></body></html>`

	doc := mustParse(t, page)
	d := container.NewDetector(nil)
	candidates := d.Find(doc)
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.Equal(t, 3, best.ItemCount)
	assert.Equal(t, best.ItemCount, doc.Count(best.ChildSelector))
	assert.NotContains(t, best.ChildSelector, "md:flex")
}

func TestFind_LargeHomogeneousList(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, `<div class="item">Item number %d with enough text</div>`, i)
	}
	b.WriteString("</ul></body></html>")

	doc := mustParse(t, b.String())
	d := container.NewDetector(nil)
	candidates := d.Find(doc)
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.Equal(t, 100, best.ItemCount)
	assert.Equal(t, best.ItemCount, doc.Count(best.ChildSelector))
}

func TestFind_FewerThanMinItems(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="post-list">
		<article><h2>Only</h2><p>One.</p></article>
		<article><h2>Two</h2><p>Two.</p></article>
	</div></body></html>`

	d := container.NewDetector(nil)
	assert.Empty(t, d.Find(mustParse(t, page)))
}

func TestApplyHints_BoostsMatchingCandidate(t *testing.T) {
	t.Parallel()

	// Both containers score identically; without hints the tie breaks on
	// child selector order. The wordpress hints single out the .hentry
	// items and must flip the ranking.
	page := `<html><body>
	<div class="feed-a">
		<article class="entry"><h3>A</h3><p>Body.</p></article>
		<article class="entry"><h3>B</h3><p>Body.</p></article>
		<article class="entry"><h3>C</h3><p>Body.</p></article>
	</div>
	<div class="feed-z">
		<article class="hentry"><h3>D</h3><p>Body.</p></article>
		<article class="hentry"><h3>E</h3><p>Body.</p></article>
		<article class="hentry"><h3>F</h3><p>Body.</p></article>
	</div>
	</body></html>`

	doc := mustParse(t, page)
	d := container.NewDetector(nil)

	candidates := d.Find(doc)
	require.Len(t, candidates, 2)
	assert.Equal(t, "div.feed-a > article", candidates[0].ChildSelector)
	assert.Equal(t, candidates[0].ContentScore, candidates[1].ContentScore)

	boosted := d.ApplyHints(doc, candidates, framework.ItemSelectorHints("wordpress"))
	require.Len(t, boosted, 2)
	assert.Equal(t, "div.feed-z > article", boosted[0].ChildSelector)
	assert.Equal(t, boosted[1].ContentScore+container.HintBoost, boosted[0].ContentScore)
}

func TestApplyHints_NoHintsLeavesRankingAlone(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, blogHTML)
	d := container.NewDetector(nil)
	candidates := d.Find(doc)
	require.NotEmpty(t, candidates)

	unboosted := candidates[0].ContentScore
	got := d.ApplyHints(doc, candidates, nil)
	assert.Equal(t, unboosted, got[0].ContentScore)
}

func TestGeneralize_SharedIDPrefix(t *testing.T) {
	t.Parallel()

	page := `<html><body>
	<section id="shard-1">
		<article><h3>A</h3><p>Item body text.</p></article>
		<article><h3>B</h3><p>Item body text.</p></article>
		<article><h3>C</h3><p>Item body text.</p></article>
	</section>
	<section id="shard-2">
		<article><h3>D</h3><p>Item body text.</p></article>
		<article><h3>E</h3><p>Item body text.</p></article>
		<article><h3>F</h3><p>Item body text.</p></article>
	</section>
	</body></html>`

	doc := mustParse(t, page)
	d := container.NewDetector(nil)
	candidates := d.Find(doc)
	require.NotEmpty(t, candidates)

	got := d.GeneralizeItemSelector(doc, candidates[0])
	assert.Equal(t, `[id^="shard"] > article`, got)
	assert.Equal(t, 6, doc.Count(got))
}

func TestGeneralize_SharedStableClass(t *testing.T) {
	t.Parallel()

	page := `<html><body>
	<div class="wrapper"><div class="results-a">
		<article class="css-9x8y7z result"><h3>A</h3><p>Body.</p></article>
		<article class="css-1q2w3e result"><h3>B</h3><p>Body.</p></article>
		<article class="css-4r5t6y result"><h3>C</h3><p>Body.</p></article>
	</div></div>
	<div class="wrapper"><div class="results-b">
		<article class="css-7u8i9o result"><h3>D</h3><p>Body.</p></article>
		<article class="css-0p1a2s result"><h3>E</h3><p>Body.</p></article>
		<article class="css-3d4f5g result"><h3>F</h3><p>Body.</p></article>
	</div></div>
	</body></html>`

	doc := mustParse(t, page)
	d := container.NewDetector(nil)
	best := container.Candidate{
		ContainerSelector: "div.results-a",
		ChildSelector:     "div.results-a > article",
		ContainerTag:      "div",
		ChildTag:          "article",
		ItemCount:         3,
	}

	got := d.GeneralizeItemSelector(doc, best)
	assert.Equal(t, "article.result", got)
	assert.Equal(t, 6, doc.Count(got))
}

func TestGeneralize_RejectsExplosion(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<html><body><div class="items">`)
	b.WriteString(`<article><h3>A</h3></article><article><h3>B</h3></article><article><h3>C</h3></article>`)
	b.WriteString(`</div><div class="noise">`)
	for i := 0; i < 510; i++ {
		b.WriteString(`<article><span>x</span></article>`)
	}
	b.WriteString(`</div></body></html>`)

	doc := mustParse(t, b.String())
	d := container.NewDetector(nil)
	best := container.Candidate{
		ContainerSelector: "div.items",
		ChildSelector:     "div.items > article",
		ContainerTag:      "div",
		ChildTag:          "article",
		ItemCount:         3,
	}

	// Every widening attempt overshoots the match ceiling, so the
	// original selector survives unchanged.
	assert.Equal(t, "div.items > article", d.GeneralizeItemSelector(doc, best))
}

func TestGeneralize_NoWideningNeeded(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, blogHTML)
	d := container.NewDetector(nil)
	candidates := d.Find(doc)
	require.NotEmpty(t, candidates)

	got := d.GeneralizeItemSelector(doc, candidates[0])
	matched, ok := doc.Query(got)
	require.True(t, ok)
	assert.GreaterOrEqual(t, matched.Length(), candidates[0].ItemCount)
}
