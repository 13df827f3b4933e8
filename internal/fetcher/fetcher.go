// Package fetcher retrieves a single page's HTML for analysis. Network
// access lives here, at the CLI boundary; the analyzer core itself never
// performs I/O.
package fetcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/russellbomer/domsift/internal/logger"
)

// Config holds fetcher settings.
type Config struct {
	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
	// Timeout bounds one request.
	Timeout time.Duration `yaml:"timeout"`
	// Delay is the per-domain politeness delay.
	Delay time.Duration `yaml:"delay"`
	// MaxBodySize caps the response body in bytes.
	MaxBodySize int `yaml:"max_body_size"`
}

// Default fetcher settings.
const (
	DefaultUserAgent   = "domsift/1.0 (+https://github.com/russellbomer/domsift)"
	DefaultTimeout     = 30 * time.Second
	DefaultDelay       = 1 * time.Second
	DefaultMaxBodySize = 10 * 1024 * 1024
)

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	if c.MaxBodySize == 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
}

// Fetcher downloads single pages with a configured colly collector.
type Fetcher struct {
	cfg Config
	log logger.Interface
}

// New creates a Fetcher. A nil logger falls back to the no-op logger.
func New(cfg Config, log logger.Interface) *Fetcher {
	cfg.SetDefaults()
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Fetcher{cfg: cfg, log: log}
}

// Fetch retrieves pageURL and returns the raw HTML body. Each call uses
// a fresh collector, so Fetcher is safe for concurrent use.
func (f *Fetcher) Fetch(pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.cfg.UserAgent),
		colly.MaxBodySize(f.cfg.MaxBodySize),
	)
	c.SetRequestTimeout(f.cfg.Timeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: f.cfg.Delay}); err != nil {
		return "", fmt.Errorf("configure rate limit: %w", err)
	}

	var body string
	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("request to %s failed with status %d: %w", pageURL, r.StatusCode, err)
	})

	f.log.Debug("fetching page", "url", pageURL)
	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", errors.New("empty response body")
	}
	return body, nil
}
