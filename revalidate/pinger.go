package revalidate

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pinger asks the rendering frontend to regenerate stale paths by calling its
// revalidation endpoint once per path, concurrently.
type Pinger struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewPinger creates a pinger against baseURL's /api/revalidate endpoint.
func NewPinger(baseURL, secret string) *Pinger {
	return &Pinger{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Invalidate pings every path. Individual failures are logged; none abort the
// rest of the set.
func (p *Pinger) Invalidate(ctx context.Context, paths []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, path := range paths {
		g.Go(func() error {
			if err := p.ping(ctx, path); err != nil {
				log.Printf("revalidate: ping %s: %v", path, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Pinger) ping(ctx context.Context, path string) error {
	endpoint := p.baseURL + "/api/revalidate?path=" + url.QueryEscape(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if p.secret != "" {
		req.Header.Set("X-Revalidate-Secret", p.secret)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "unexpected status " + http.StatusText(e.code)
}
