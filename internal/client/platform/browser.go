package platform

import (
	"context"

	"github.com/pkg/browser"

	"github.com/passdoo/desktop-cli/internal/logging"
)

// OpenOutcome tells the caller how far down the degradation chain the URL
// got: opened in a browser, copied to the clipboard, or neither, in which
// case the UI must display it for manual copying.
type OpenOutcome int

const (
	OutcomeOpened OpenOutcome = iota
	OutcomeCopied
	OutcomeManual
)

// Opener launches URLs in the system browser with a three-tier fallback:
// open the browser, copy the URL to the clipboard, or hand the URL back for
// on-screen display. It never returns an error; the worst case is manual.
type Opener struct {
	log  logging.Logger
	clip *Clipboard

	// openBrowser is a test seam for browser.OpenURL.
	openBrowser func(url string) error
}

func NewOpener(log logging.Logger, clip *Clipboard) *Opener {
	return &Opener{log: log, clip: clip, openBrowser: browser.OpenURL}
}

// Open tries to put url in front of the user and reports which tier worked.
func (o *Opener) Open(ctx context.Context, url string) OpenOutcome {
	name, err := runChain(ctx, o.log, url, []Strategy{
		{Name: "browser", Run: func(_ context.Context, u string) error {
			return o.openBrowser(u)
		}},
		{Name: "clipboard", Run: func(ctx context.Context, u string) error {
			return o.clip.Write(ctx, u)
		}},
	})
	if err != nil {
		o.log.Warn(ctx, "could not open or copy URL, falling back to manual display", "url", url)
		return OutcomeManual
	}
	if name == "clipboard" {
		return OutcomeCopied
	}
	return OutcomeOpened
}
