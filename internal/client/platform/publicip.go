package platform

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/passdoo/desktop-cli/internal/logging"
)

// defaultIPServices are interchangeable plain-text "what is my IP" services,
// tried in order. First success wins.
var defaultIPServices = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://icanhazip.com",
}

const ipAttemptTimeout = 3 * time.Second

// IPResolver resolves the machine's public IP, best-effort. Failures are
// swallowed: the result is "" and the caller omits the field.
type IPResolver struct {
	log      logging.Logger
	http     *http.Client
	services []string
}

func NewIPResolver(log logging.Logger) *IPResolver {
	return &IPResolver{
		log:      log,
		http:     &http.Client{},
		services: defaultIPServices,
	}
}

// PublicIP queries each service in turn with a per-attempt timeout and
// returns the first response that parses as an IP address, or "".
func (r *IPResolver) PublicIP(ctx context.Context) string {
	for _, svc := range r.services {
		ip := r.query(ctx, svc)
		if ip != "" {
			return ip
		}
		if ctx.Err() != nil {
			return ""
		}
	}
	return ""
}

func (r *IPResolver) query(ctx context.Context, url string) string {
	attemptCtx, cancel := context.WithTimeout(ctx, ipAttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug(ctx, "public IP lookup failed", "service", url, "err", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return ""
	}
	ip := strings.TrimSpace(string(raw))
	if net.ParseIP(ip) == nil {
		return ""
	}
	return ip
}
