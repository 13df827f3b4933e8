package framework

// registry holds every framework profile in detection priority order:
// meta-frameworks and JS frameworks first, CMS platforms next, CSS
// frameworks last. The table is initialized once and never mutated.
var registry = []Profile{
	{
		Name: "nextjs",
		Signals: []Signal{
			{Pattern: "__next_data__", Weight: 40},
			{Pattern: `id="__next"`, Weight: 30},
			{Pattern: "_next/static", Weight: 25},
			{Pattern: "next/script", Weight: 10},
		},
		ItemSelectorHints: []string{"article", "[class*='card']", "li"},
	},
	{
		Name: "nuxt",
		Signals: []Signal{
			{Pattern: "__nuxt", Weight: 40},
			{Pattern: "_nuxt/", Weight: 30},
			{Pattern: "data-n-head", Weight: 20},
		},
		ItemSelectorHints: []string{"article", "[class*='card']", "li"},
	},
	{
		Name: "gatsby",
		Signals: []Signal{
			{Pattern: "___gatsby", Weight: 40},
			{Pattern: "gatsby-image-wrapper", Weight: 25},
			{Pattern: "/page-data/", Weight: 20},
		},
		ItemSelectorHints: []string{"article", "[class*='card']"},
	},
	{
		Name: "angular",
		Signals: []Signal{
			{Pattern: "ng-version", Weight: 40},
			{Pattern: "ng-app", Weight: 30},
			{Pattern: "_nghost", Weight: 20},
			{Pattern: "_ngcontent", Weight: 20},
		},
	},
	{
		Name: "svelte",
		Signals: []Signal{
			{Pattern: "svelte-", Weight: 40},
			{Pattern: "__svelte", Weight: 30},
		},
	},
	{
		Name: "vuejs",
		Signals: []Signal{
			{Pattern: "v-for=", Weight: 40},
			{Pattern: "data-v-", Weight: 30},
			{Pattern: "v-if=", Weight: 20},
			{Pattern: "v-bind:", Weight: 15},
			{Pattern: `id="app"`, Weight: 10},
		},
		ItemSelectorHints: []string{"[class*='item']", "[class*='card']", "li"},
	},
	{
		Name: "react",
		Signals: []Signal{
			{Pattern: "data-reactroot", Weight: 40},
			{Pattern: "react-dom", Weight: 20},
			{Pattern: "data-reactid", Weight: 20},
			{Pattern: `id="root"`, Weight: 15},
		},
		ItemSelectorHints: []string{"[class*='item']", "[class*='card']", "li"},
	},
	{
		Name: "wordpress",
		Signals: []Signal{
			{Pattern: "wp-content", Weight: 30},
			{Pattern: "wp-includes", Weight: 20},
			{Pattern: `content="wordpress`, Weight: 25},
			{Pattern: "wp-json", Weight: 15},
			{Pattern: "wp-block", Weight: 15},
			{Pattern: "entry-title", Weight: 15},
			{Pattern: "entry-content", Weight: 15},
		},
		ItemSignals: []Signal{
			{Pattern: `class="post`, Weight: 10},
			{Pattern: "hentry", Weight: 10},
		},
		ItemSelectorHints: []string{"article.post", ".post", ".hentry", ".wp-block-post"},
		FieldMappings: map[string][]FieldPattern{
			"title": {
				{Selector: ".entry-title"},
				{Selector: "h2.entry-title a"},
				{Selector: ".post-title"},
			},
			"link": {
				{Selector: ".entry-title a", Attribute: "href"},
				{Selector: "a.more-link", Attribute: "href"},
			},
			"date": {
				{Selector: "time.entry-date", Attribute: "datetime"},
				{Selector: ".posted-on time", Attribute: "datetime"},
				{Selector: ".entry-date"},
			},
			"author": {
				{Selector: ".author.vcard a"},
				{Selector: ".byline a"},
			},
			"image": {
				{Selector: ".post-thumbnail img", Attribute: "src"},
				{Selector: "img.wp-post-image", Attribute: "src"},
			},
			"description": {
				{Selector: ".entry-summary"},
				{Selector: ".entry-content p"},
			},
			"category": {
				{Selector: ".cat-links a"},
			},
		},
	},
	{
		Name: "drupal",
		Signals: []Signal{
			{Pattern: "/sites/default/files", Weight: 30},
			{Pattern: `content="drupal`, Weight: 25},
			{Pattern: "views-row", Weight: 25},
			{Pattern: "node--", Weight: 20},
			{Pattern: "drupal-settings-json", Weight: 20},
		},
		ItemSelectorHints: []string{".views-row", ".node", "article[role='article']"},
		FieldMappings: map[string][]FieldPattern{
			"title": {
				{Selector: ".node__title"},
				{Selector: ".views-field-title"},
				{Selector: "h2 a"},
			},
			"link": {
				{Selector: ".node__title a", Attribute: "href"},
				{Selector: ".views-field-title a", Attribute: "href"},
			},
			"date": {
				{Selector: ".views-field-created"},
				{Selector: "time", Attribute: "datetime"},
			},
		},
	},
	{
		Name: "joomla",
		Signals: []Signal{
			{Pattern: "com_content", Weight: 30},
			{Pattern: "/media/jui/", Weight: 30},
			{Pattern: `content="joomla`, Weight: 25},
			{Pattern: "itemid=", Weight: 10},
		},
		ItemSelectorHints: []string{".item", ".blog-item", ".items-row"},
	},
	{
		Name: "shopify",
		Signals: []Signal{
			{Pattern: "cdn.shopify.com", Weight: 40},
			{Pattern: "shopify-section", Weight: 30},
			{Pattern: "data-product-id", Weight: 15},
			{Pattern: "shopify.theme", Weight: 15},
		},
		ItemSignals: []Signal{
			{Pattern: "data-product-id", Weight: 15},
		},
		ItemSelectorHints: []string{".product-card", ".grid__item", "[data-product-id]"},
		FieldMappings: map[string][]FieldPattern{
			"title": {
				{Selector: ".product-card__title"},
				{Selector: ".card__heading"},
				{Selector: ".product-title"},
			},
			"link": {
				{Selector: "a.product-card__link", Attribute: "href"},
				{Selector: "a", Attribute: "href"},
			},
			"price": {
				{Selector: ".price__regular .price-item"},
				{Selector: ".price"},
				{Selector: ".money"},
			},
			"image": {
				{Selector: ".card__media img", Attribute: "src"},
				{Selector: "img", Attribute: "src"},
			},
		},
	},
	{
		Name: "squarespace",
		Signals: []Signal{
			{Pattern: "sqs-block", Weight: 35},
			{Pattern: "squarespace.com", Weight: 30},
			{Pattern: "data-block-type", Weight: 15},
		},
		ItemSelectorHints: []string{".summary-item", ".blog-item", ".sqs-gallery-block"},
	},
	{
		Name: "wix",
		Signals: []Signal{
			{Pattern: "wix.com", Weight: 30},
			{Pattern: "wixstatic.com", Weight: 30},
			{Pattern: `id="site-root"`, Weight: 20},
			{Pattern: `data-testid="richtextelement"`, Weight: 20},
		},
	},
	{
		Name: "ghost",
		Signals: []Signal{
			{Pattern: `content="ghost`, Weight: 30},
			{Pattern: `class="gh-`, Weight: 30},
			{Pattern: "ghost-head", Weight: 20},
		},
		ItemSelectorHints: []string{"article.gh-card", ".post-card", "article.post"},
		FieldMappings: map[string][]FieldPattern{
			"title": {
				{Selector: ".gh-card-title"},
				{Selector: ".post-card-title"},
			},
			"link": {
				{Selector: "a.gh-card-link", Attribute: "href"},
				{Selector: "a.post-card-content-link", Attribute: "href"},
			},
			"date": {
				{Selector: "time", Attribute: "datetime"},
			},
		},
	},
	{
		Name: "bootstrap",
		Signals: []Signal{
			{Pattern: "bootstrap", Weight: 25},
			{Pattern: `class="card"`, Weight: 15},
			{Pattern: "col-md-", Weight: 15},
			{Pattern: "list-group-item", Weight: 15},
			{Pattern: "container-fluid", Weight: 10},
		},
		ItemSignals: []Signal{
			{Pattern: `class="card`, Weight: 10},
		},
		ItemSelectorHints: []string{".card", ".list-group-item", ".media"},
		FieldMappings: map[string][]FieldPattern{
			"title": {
				{Selector: ".card-title"},
			},
			"description": {
				{Selector: ".card-text"},
			},
			"image": {
				{Selector: ".card-img-top", Attribute: "src"},
			},
			"link": {
				{Selector: "a.stretched-link", Attribute: "href"},
				{Selector: ".card-title a", Attribute: "href"},
			},
		},
	},
	{
		Name: "tailwind",
		Signals: []Signal{
			{Pattern: "tailwind", Weight: 25},
			{Pattern: "space-y-", Weight: 10},
			{Pattern: "text-gray-", Weight: 10},
			{Pattern: "rounded-lg", Weight: 10},
			{Pattern: "flex flex-col", Weight: 10},
		},
	},
	{
		// Catch-all for CMS-built pages that no specific profile claims.
		// Registered last so any specific profile wins a score tie.
		Name: "generic-cms",
		Signals: []Signal{
			{Pattern: `name="generator"`, Weight: 15},
			{Pattern: "powered by", Weight: 15},
			{Pattern: "application/rss+xml", Weight: 10},
			{Pattern: "schema.org/article", Weight: 10},
			{Pattern: `class="post`, Weight: 10},
		},
		ItemSelectorHints: []string{"article", ".post", ".entry"},
	},
}
