package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer fetches pages through headless Chrome, for sources that build their listings with JavaScript.
// A single browser is shared by all sources and started lazily on first use.
type Renderer struct {
	userAgent string
	execPath  string
	settle    time.Duration

	mu            sync.Mutex
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
}

// NewRenderer returns new Renderer. Empty execPath lets chromedp find Chrome.
func NewRenderer(userAgent, execPath string) *Renderer {
	return &Renderer{
		userAgent: userAgent,
		execPath:  execPath,
		settle:    500 * time.Millisecond,
	}
}

// FetchPage navigates to url, waits for body to be ready and returns rendered HTML.
// Non-2xx document responses result in ErrStatusNotOK.
func (r *Renderer) FetchPage(ctx context.Context, url string) (*Page, error) {
	browserCtx, err := r.browser()
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	// tab must stop when caller gives up
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	resp, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, fmt.Errorf("can't render page: %w", err)
	}
	if resp != nil && (resp.Status < 200 || resp.Status > 299) {
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.Status)
	}

	var html string
	err = chromedp.Run(tabCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("can't render page: %w", err)
	}

	return &Page{
		URL:         url,
		ContentType: "text/html",
		Body:        []byte(html),
	}, nil
}

// Close stops the browser if it was started.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stop()
}

// stop cancels browser and its allocator. Caller holds mu.
func (r *Renderer) stop() {
	if r.cancelBrowser != nil {
		r.cancelBrowser()
	}
	if r.cancelAlloc != nil {
		r.cancelAlloc()
	}
	r.browserCtx, r.cancelBrowser = nil, nil
	r.allocCtx, r.cancelAlloc = nil, nil
}

func (r *Renderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}
	// replaces crashed browser
	r.stop()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.userAgent),
		chromedp.DisableGPU,
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	r.allocCtx, r.cancelAlloc = chromedp.NewExecAllocator(context.Background(), opts...)
	r.browserCtx, r.cancelBrowser = chromedp.NewContext(r.allocCtx)

	// starts the browser
	if err := chromedp.Run(r.browserCtx); err != nil {
		r.stop()
		return nil, fmt.Errorf("can't start browser: %w", err)
	}

	return r.browserCtx, nil
}
