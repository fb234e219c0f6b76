// Package platform integrates the surrounding desktop: opening a browser,
// writing the clipboard, describing the device and resolving the public IP.
// Everything here degrades silently; the primary flows never fail because a
// platform integration did.
package platform

import (
	"context"
	"errors"

	"github.com/passdoo/desktop-cli/internal/logging"
)

// Strategy is one tier of a fallback chain.
type Strategy struct {
	Name string
	Run  func(ctx context.Context, payload string) error
}

// ErrChainExhausted is returned when every strategy in a chain failed.
var ErrChainExhausted = errors.New("all strategies failed")

// runChain tries each strategy in order and returns the name of the first
// that succeeds. Individual failures are logged at debug level and the next
// tier is tried.
func runChain(ctx context.Context, log logging.Logger, payload string, strategies []Strategy) (string, error) {
	for _, s := range strategies {
		if err := s.Run(ctx, payload); err != nil {
			log.Debug(ctx, "strategy failed, trying next", "strategy", s.Name, "err", err)
			continue
		}
		return s.Name, nil
	}
	return "", ErrChainExhausted
}
