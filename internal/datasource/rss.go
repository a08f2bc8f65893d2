package datasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/finpulse/pkg/models"
)

// FeedSource is one named RSS feed.
type FeedSource struct {
	Name string
	URL  string
}

// DefaultFeedSources lists financial news RSS feeds used when none are
// configured.
var DefaultFeedSources = []FeedSource{
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
	{Name: "CNBC Markets", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
	{Name: "MarketWatch", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories"},
}

// Feeds fetches current headlines from RSS sources, producing records in the
// same shape as the static CSV dataset so they can flow through the pipeline
// unchanged. Rows fetched here have no ticker attribution; the cleaner's
// missing-value policy decides what happens to them.
type Feeds struct {
	sources []FeedSource
	parser  *gofeed.Parser
	limiter *RateLimiter
}

// NewFeeds creates a feed fetcher; with no sources the defaults are used.
func NewFeeds(sources []FeedSource, requestsPerSecond int) *Feeds {
	if len(sources) == 0 {
		sources = DefaultFeedSources
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	return &Feeds{
		sources: sources,
		parser:  gofeed.NewParser(),
		limiter: NewRateLimiter(requestsPerSecond, time.Second),
	}
}

// FetchHeadlines pulls all configured feeds concurrently and merges their
// items, newest first. A single failing feed is skipped, not fatal; the
// returned error is non-nil only when every feed failed.
func (f *Feeds) FetchHeadlines(ctx context.Context) ([]models.NewsRecord, error) {
	var (
		mu      sync.Mutex
		records []models.NewsRecord
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range f.sources {
		g.Go(func() error {
			if err := f.limiter.Wait(gctx); err != nil {
				return err
			}
			feed, err := f.parser.ParseURLWithContext(src.URL, gctx)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", src.Name, err))
				mu.Unlock()
				return nil // non-fatal
			}
			recs := FeedRecords(src.Name, feed)
			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(records) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all feeds failed: %v", errs)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PublishedAt.After(records[j].PublishedAt)
	})
	return records, nil
}

// FeedRecords converts parsed feed items into news records. Items without a
// publication time keep a zero PublishedAt and are left to the cleaner.
func FeedRecords(source string, feed *gofeed.Feed) []models.NewsRecord {
	records := make([]models.NewsRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		rec := models.NewsRecord{
			Headline:  strings.TrimSpace(item.Title),
			URL:       item.Link,
			Publisher: source,
		}
		if item.PublishedParsed != nil {
			rec.PublishedAt = item.PublishedParsed.UTC()
			rec.RawDate = rec.PublishedAt.Format(time.RFC3339)
		}
		records = append(records, rec)
	}
	return records
}

// ArticleText fetches the article page behind a headline and extracts its
// paragraph text, for scoring on full body text instead of the headline
// alone. Best-effort: boilerplate paragraphs are not filtered.
func (f *Feeds) ArticleText(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, _, err := doGet(ctx, url, map[string]string{"Accept": "text/html"})
	if err != nil {
		return "", fmt.Errorf("fetch article %s: %w", url, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse article %s: %w", url, err)
	}

	var sb strings.Builder
	doc.Find("article p, .article-body p, main p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no article text found at %s", url)
	}
	return text, nil
}
