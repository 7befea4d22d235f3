package extract

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/carlmjohnson/requests"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagewatch/lib/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Extractor turns a tracked item into normalized plain text. Empty text means
// no content was obtained; the caller treats it as a failed fetch, never as
// "the page became empty".
type Extractor struct {
	log       *zap.Logger
	transport http.RoundTripper
	renderer  *Renderer // nil when headless Chromium is unavailable

	fetchTimeout time.Duration
}

func NewExtractor(lc fx.Lifecycle, log *zap.Logger, transport http.RoundTripper, renderer *Renderer) *Extractor {
	return &Extractor{
		log:          log,
		transport:    transport,
		renderer:     renderer,
		fetchTimeout: 30 * time.Second,
	}
}

func (e *Extractor) Extract(ctx context.Context, item *models.TrackedItem) (string, error) {
	if item.RenderMode == models.RenderJS {
		if e.renderer.Available() {
			text, err := e.renderer.Render(ctx, item.URL, item.Selector)
			if err != nil {
				e.log.Sugar().Errorw("error rendering page", "url", item.URL, "err", err)
				return "", err
			}
			return text, nil
		}
		e.log.Sugar().Warnf("Headless browser unavailable, fetching %s statically", item.URL)
	}

	return e.extractStatic(ctx, item.URL, item.Selector)
}

func (e *Extractor) extractStatic(ctx context.Context, url, selector string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	var page string
	err := requests.URL(url).
		Transport(e.transport).
		UserAgent(browserUserAgent).
		ToString(&page).
		Fetch(ctx)
	if err != nil {
		e.log.Sugar().Errorw("error fetching page", "url", url, "err", err)
		return "", err
	}

	return e.extractText(page, selector)
}

// extractText parses raw HTML, strips non-content markup, scopes to the
// selector when one is given and normalizes the result. A selector matching
// nothing degrades to whole-document text.
func (e *Extractor) extractText(page, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	stripNonContent(doc)
	root := doc.Get(0)

	if selector != "" {
		nodes, err := selectNodes(root, selector)
		if err != nil {
			e.log.Sugar().Warnf("Selector '%s' is invalid, using full page: %v", selector, err)
		} else if len(nodes) == 0 {
			e.log.Sugar().Warnf("Selector '%s' not found, using full page", selector)
		} else {
			return joinNodeText(nodes), nil
		}
	}

	return compactWhitespace(collectText(root)), nil
}
