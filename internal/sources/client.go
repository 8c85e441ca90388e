package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fetchTimeout bounds every outbound source call so a hung API cannot eat
// the trigger invocation's execution window.
const fetchTimeout = 10 * time.Second

const userAgent = "bug-besty/1.0"

type client struct {
	http *http.Client
}

func newClient() *client {
	return &client{http: &http.Client{Timeout: fetchTimeout}}
}

type requestOptions struct {
	method    string
	body      string
	headers   map[string]string
	basicUser string
	basicPass string
}

// getJSON performs the request and decodes the JSON response into out.
// Non-2xx statuses are errors; callers treat any error as an empty
// contribution.
func (c *client) getJSON(ctx context.Context, url string, opts requestOptions, out any) error {
	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.body != "" {
		body = strings.NewReader(opts.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if opts.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}
	if opts.basicUser != "" {
		req.SetBasicAuth(opts.basicUser, opts.basicPass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// prefixed joins bare subdomain labels onto the root domain, for APIs that
// return "www" instead of "www.example.com".
func prefixed(subs []string, domain string) []string {
	hostnames := make([]string, 0, len(subs))
	for _, sub := range subs {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		hostnames = append(hostnames, sub+"."+domain)
	}
	return hostnames
}
