package extract

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Renderer drives a headless Chromium for pages that only produce their
// content after JavaScript execution. Availability is decided once at
// startup; the browser itself is launched lazily on first use.
type Renderer struct {
	log     *zap.Logger
	binPath string

	mu      sync.Mutex
	browser *rod.Browser

	navTimeout  time.Duration
	settleDelay time.Duration
}

// NewRenderer returns nil when no Chromium binary can be found, in which case
// jsRendered items degrade to static fetching.
func NewRenderer(lc fx.Lifecycle, log *zap.Logger) *Renderer {
	bin, found := launcher.LookPath()
	if !found {
		log.Sugar().Warn("No headless browser found; js_render pages will fall back to static fetch")
		return nil
	}

	r := &Renderer{
		log:         log,
		binPath:     bin,
		navTimeout:  60 * time.Second,
		settleDelay: 2 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return r.Close()
		},
	})

	return r
}

func (r *Renderer) Available() bool {
	return r != nil
}

func (r *Renderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	controlURL, err := launcher.New().Bin(r.binPath).Headless(true).Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}

	r.browser = browser
	return browser, nil
}

func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// Render loads the page, waits for network idle plus a settle delay, then
// reads rendered text for the selector (whole body when the selector is empty
// or matches nothing).
func (r *Renderer) Render(ctx context.Context, url, selector string) (string, error) {
	browser, err := r.connect()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(r.navTimeout)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	wait := page.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	wait()
	time.Sleep(r.settleDelay)

	if selector != "" {
		text, found, err := r.selectorText(page, selector)
		if err != nil {
			return "", err
		}
		if found {
			return text, nil
		}
		r.log.Sugar().Warnf("Selector '%s' not found, using full page", selector)
	}

	body, err := page.Element("body")
	if err != nil {
		return "", err
	}
	text, err := body.Text()
	if err != nil {
		return "", err
	}
	return compactWhitespace(text), nil
}

func (r *Renderer) selectorText(page *rod.Page, selector string) (string, bool, error) {
	var elements rod.Elements
	var err error
	if strings.HasPrefix(selector, "/") {
		elements, err = page.ElementsX(selector)
	} else {
		elements, err = page.Elements(selector)
	}
	if err != nil {
		return "", false, err
	}
	if len(elements) == 0 {
		return "", false, nil
	}

	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return "", false, err
		}
		parts = append(parts, text)
	}
	return compactWhitespace(strings.Join(parts, " ")), true, nil
}
