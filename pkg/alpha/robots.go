package alpha

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// robotsAllowed reports whether robots.txt of target's host lets us fetch
// target's path. An unreachable or missing robots.txt allows the fetch;
// any other non 200 answer or an unparsable file denies it.
func (c *Client) robotsAllowed(ctx context.Context, target *url.URL) bool {
	robotsURL := &url.URL{
		Scheme: target.Scheme,
		Host:   target.Host,
		Path:   "/robots.txt",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), http.NoBody)
	if err != nil {
		return true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("robots.txt unreachable", "url", robotsURL.String(), "error", err)
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return true
	}
	if resp.StatusCode != http.StatusOK {
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return false
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return false
	}

	return robots.TestAgent(target.Path, c.userAgent())
}
