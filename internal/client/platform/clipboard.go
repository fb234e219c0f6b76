package platform

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/passdoo/desktop-cli/internal/logging"
)

// Clipboard writes text to the system clipboard through a fallback chain:
// the native clipboard first, then an OSC 52 escape for terminals (and SSH
// sessions) where no native clipboard utility is available.
type Clipboard struct {
	log logging.Logger
	out io.Writer

	// strategies is replaceable in tests.
	strategies []Strategy
}

func NewClipboard(log logging.Logger) *Clipboard {
	c := &Clipboard{log: log, out: os.Stdout}
	c.strategies = []Strategy{
		{Name: "native", Run: func(_ context.Context, text string) error {
			return clipboard.WriteAll(text)
		}},
		{Name: "osc52", Run: func(_ context.Context, text string) error {
			_, err := fmt.Fprintf(c.out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
			return err
		}},
	}
	return c
}

// Write copies text to the clipboard, trying each tier in turn.
func (c *Clipboard) Write(ctx context.Context, text string) error {
	_, err := runChain(ctx, c.log, text, c.strategies)
	return err
}
