package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// PageSnapshot is the outcome of loading one tournament page: the rendered
// HTML plus which of the two known container kinds were present.
type PageSnapshot struct {
	URL        string
	Doc        *goquery.Document
	HasBracket bool
	HasGroups  bool
}

// Fetcher drives the shared browser to load upstream pages. The settle
// delay is a fixed wait after navigation: the page renders client-side and
// exposes no reliable ready event.
type Fetcher struct {
	browser     *Browser
	settleDelay time.Duration
	navTimeout  time.Duration
	logger      *slog.Logger
}

func NewFetcher(browser *Browser, settleDelay, navTimeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		browser:     browser,
		settleDelay: settleDelay,
		navTimeout:  navTimeout,
		logger:      logger,
	}
}

// FetchTournamentPage loads a tournament URL in a fresh tab and reports
// which match containers the rendered DOM carries. When neither container
// kind is present the page structure is logged to help diagnose upstream
// markup drift.
func (f *Fetcher) FetchTournamentPage(ctx context.Context, url string) (*PageSnapshot, error) {
	if !IsTournamentURL(url) {
		return nil, fmt.Errorf("not a n01darts.com url: %s", url)
	}

	doc, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	snapshot := &PageSnapshot{
		URL:        url,
		Doc:        doc,
		HasBracket: doc.Find(".t_item_container").Length() > 0,
		HasGroups:  doc.Find(".rr_table_container").Length() > 0,
	}

	if !snapshot.HasBracket && !snapshot.HasGroups {
		f.logDiagnostics(url, doc)
	}

	return snapshot, nil
}

// FetchStatsPage loads the statistics page for a tournament URL and returns
// the rendered document.
func (f *Fetcher) FetchStatsPage(ctx context.Context, tournamentURL string) (*goquery.Document, error) {
	statsURL, err := StatsURL(tournamentURL)
	if err != nil {
		return nil, err
	}
	return f.fetch(ctx, statsURL)
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	tabCtx, cancel := f.browser.NewTab(ctx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.navTimeout)
	defer cancelTimeout()

	f.logger.Info("navigating", slog.String("url", url))

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", url, err)
	}
	return doc, nil
}

// logDiagnostics records a body-text preview and the relevant class names
// found on the page, so a markup change upstream can be diagnosed from
// logs without reproducing the scrape live.
func (f *Fetcher) logDiagnostics(url string, doc *goquery.Document) {
	body := multiSpace.ReplaceAllString(strings.TrimSpace(doc.Find("body").Text()), " ")
	if len(body) > 200 {
		body = body[:200]
	}

	classSet := make(map[string]bool)
	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		for _, c := range strings.Fields(sel.AttrOr("class", "")) {
			if strings.Contains(c, "rr_") || strings.Contains(c, "t_item") || strings.Contains(c, "table") {
				classSet[c] = true
			}
		}
	})
	classes := make([]string, 0, 20)
	for c := range classSet {
		if len(classes) == 20 {
			break
		}
		classes = append(classes, c)
	}

	f.logger.Warn("no match containers found",
		slog.String("url", url),
		slog.String("body_preview", body),
		slog.String("classes", strings.Join(classes, ", ")))
}
