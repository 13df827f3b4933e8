package framework_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russellbomer/domsift/internal/framework"
)

const wordpressBlogHTML = `<!DOCTYPE html>
<html>
<head>
	<meta name="generator" content="WordPress 6.4">
	<link rel="stylesheet" href="https://blog.example/wp-content/themes/twentytwenty/style.css">
</head>
<body>
<main>
	<article class="post hentry"><h2 class="entry-title"><a href="/p1">First</a></h2><div class="entry-content"><p>Body one</p></div></article>
	<article class="post hentry"><h2 class="entry-title"><a href="/p2">Second</a></h2><div class="entry-content"><p>Body two</p></div></article>
	<article class="post hentry"><h2 class="entry-title"><a href="/p3">Third</a></h2><div class="entry-content"><p>Body three</p></div></article>
</main>
</body>
</html>`

func TestDetectAll_WordPressBlog(t *testing.T) {
	t.Parallel()

	results := framework.DetectAll(wordpressBlogHTML, nil)
	require.NotEmpty(t, results)

	best := results[0]
	assert.Equal(t, "wordpress", best.Name)
	assert.GreaterOrEqual(t, best.Score, 50)
	assert.Contains(t, best.Indicators, "wp-content")
	assert.Contains(t, best.Indicators, "entry-title")
}

func TestDetectAll_VueTemplate(t *testing.T) {
	t.Parallel()

	page := `<html><body><div id="app"><ul><li v-for="item in items">{{ item.name }}</li></ul></div></body></html>`

	results := framework.DetectAll(page, nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "vuejs", results[0].Name)
	assert.GreaterOrEqual(t, results[0].Score, framework.DetectionThreshold)
}

func TestDetectAll_ScoresClamped(t *testing.T) {
	t.Parallel()

	// Every wordpress signal at once would sum past 100 unclamped.
	page := `wp-content wp-includes content="wordpress wp-json wp-block entry-title entry-content`

	for _, d := range framework.DetectAll(page, nil) {
		assert.GreaterOrEqual(t, d.Score, 0)
		assert.LessOrEqual(t, d.Score, 100, "score for %s exceeds cap", d.Name)
	}
}

func TestDetectAll_Deterministic(t *testing.T) {
	t.Parallel()

	first := framework.DetectAll(wordpressBlogHTML, nil)
	for i := 0; i < 10; i++ {
		again := framework.DetectAll(wordpressBlogHTML, nil)
		assert.Equal(t, first, again)
	}
}

func TestDetectAll_RegistryOrderBreaksTies(t *testing.T) {
	t.Parallel()

	// Both profiles score exactly 40; nextjs is registered before react.
	page := `<script id="__NEXT_DATA__"></script><div data-reactroot></div>`

	results := framework.DetectAll(page, nil)
	require.GreaterOrEqual(t, len(results), 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "nextjs", results[0].Name)
	assert.Equal(t, "react", results[1].Name)
}

func TestDetectAll_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, framework.DetectAll("", nil))
}

func TestDetectBest_BelowThreshold(t *testing.T) {
	t.Parallel()

	// A lone weak signal scores under the commit threshold.
	page := `<html><body><div class="container-fluid">x</div></body></html>`

	_, ok := framework.DetectBest(page, nil)
	assert.False(t, ok)
}

func TestDetectBest_CommitsAtThreshold(t *testing.T) {
	t.Parallel()

	best, ok := framework.DetectBest(wordpressBlogHTML, nil)
	require.True(t, ok)
	assert.Equal(t, "wordpress", best.Name)
}

func TestDetectOne_CaseInsensitive(t *testing.T) {
	t.Parallel()

	p, ok := framework.ProfileByName("wordpress")
	require.True(t, ok)

	score := framework.DetectOne(p, strings.ToUpper(wordpressBlogHTML), nil)
	assert.GreaterOrEqual(t, score, 50)
}

func TestDetectAll_GenericCMSFallback(t *testing.T) {
	t.Parallel()

	// No specific framework fingerprint, just the generic CMS tells.
	page := `<!DOCTYPE html>
<html>
<head>
	<meta name="generator" content="SomeObscureCMS 2.1">
	<link rel="alternate" type="application/rss+xml" href="/feed">
</head>
<body>
<footer>Powered by SomeObscureCMS</footer>
</body>
</html>`

	results := framework.DetectAll(page, nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "generic-cms", results[0].Name)
	assert.Equal(t, framework.DetectionThreshold, results[0].Score)

	hints := framework.ItemSelectorHints("generic-cms")
	assert.Contains(t, hints, "article")
}

func TestDetectAll_SpecificProfileOutranksGenericCMS(t *testing.T) {
	t.Parallel()

	results := framework.DetectAll(wordpressBlogHTML, nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "wordpress", results[0].Name)
	for _, d := range results[1:] {
		assert.LessOrEqual(t, d.Score, results[0].Score)
	}
}

func TestProfileByName_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := framework.ProfileByName("laravel")
	assert.False(t, ok)
	assert.Nil(t, framework.ItemSelectorHints("laravel"))
	assert.Nil(t, framework.FieldMappings("laravel"))
}

func TestFieldMappings_WordPress(t *testing.T) {
	t.Parallel()

	mappings := framework.FieldMappings("wordpress")
	require.NotNil(t, mappings)
	require.NotEmpty(t, mappings["title"])
	assert.Equal(t, ".entry-title", mappings["title"][0].Selector)
	require.NotEmpty(t, mappings["link"])
	assert.Equal(t, "href", mappings["link"][0].Attribute)
}
