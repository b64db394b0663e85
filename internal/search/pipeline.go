package search

import (
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mnfaaiiq/soniq/internal/shared"
)

const (
	// SearchPath is the route stabilized queries navigate to.
	SearchPath = "/search"
	// TitleParam carries the stabilized query value.
	TitleParam = "title"
)

// Navigator performs a client-side route change to a path with query
// parameters. Navigation failures are the collaborator's to surface.
type Navigator interface {
	Navigate(path string, query url.Values)
}

// Pipeline turns raw text changes into debounced search navigations.
//
// Exactly one navigation fires per stabilized value change, including the
// empty string so that clearing the input resets the search. Values that
// stabilize to the value already dispatched fire nothing.
type Pipeline struct {
	nav Navigator
	deb *Debouncer[string]

	mu         sync.Mutex
	last       string
	dispatched bool
}

// NewPipeline creates a Pipeline dispatching to nav after delay of quiet.
func NewPipeline(nav Navigator, delay time.Duration) *Pipeline {
	p := &Pipeline{nav: nav}
	p.deb = NewDebouncer(delay, p.dispatch)
	return p
}

// Input feeds one raw text change (e.g. a keystroke's resulting value).
func (p *Pipeline) Input(value string) {
	p.deb.Set(value)
}

// Close tears the pipeline down, releasing any pending timer. No
// navigation fires after Close.
func (p *Pipeline) Close() {
	p.deb.Stop()
}

func (p *Pipeline) dispatch(value string) {
	p.mu.Lock()
	if p.dispatched && value == p.last {
		p.mu.Unlock()
		return
	}
	p.last = value
	p.dispatched = true
	p.mu.Unlock()

	query := url.Values{}
	query.Set(TitleParam, value)
	p.nav.Navigate(SearchPath, query)
}

// BrowserNavigator opens search routes in the system browser, for CLI use
// where no in-process view exists to swap.
type BrowserNavigator struct {
	BaseURL string
	Logger  *log.Logger
}

// Navigate opens baseURL+path?query in the default browser. Failures are
// logged; there is nothing to recover locally.
func (b *BrowserNavigator) Navigate(path string, query url.Values) {
	target := b.BaseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	if err := shared.OpenBrowser(target); err != nil && b.Logger != nil {
		b.Logger.Error("failed to open browser", "url", target, "err", err)
	}
}
