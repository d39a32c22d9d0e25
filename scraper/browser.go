package scraper

import (
	"context"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Browser owns the long-lived headless Chrome process. It is constructed
// once in main, shared by every scrape through NewTab, and must be closed
// on shutdown. Scrapes run sequentially, so no locking is needed around
// tab creation.
type Browser struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func NewBrowser(headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so startup failures surface here
	// instead of on the first scrape.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	return &Browser{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// NewTab opens a fresh tab scoped to ctx. The returned cancel closes the
// tab; the browser process itself stays up.
func (b *Browser) NewTab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)

	// Tie the tab to the caller's context so poller cancellation aborts
	// an in-flight navigation.
	stop := context.AfterFunc(ctx, tabCancel)

	return tabCtx, func() {
		stop()
		tabCancel()
	}
}

func (b *Browser) Close() {
	b.browserCancel()
	b.allocCancel()
}
