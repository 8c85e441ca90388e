package sources

import (
	"context"
	"fmt"
	"net/url"
)

type shodan struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewShodan(apiKey string) *shodan {
	return &shodan{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.shodan.io",
	}
}

func (s *shodan) Name() string { return "shodan" }

func (s *shodan) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Subdomains []string `json:"subdomains"`
	}
	endpoint := fmt.Sprintf("%s/dns/domain/%s?key=%s", s.baseURL, domain, url.QueryEscape(s.apiKey))
	if err := s.client.getJSON(ctx, endpoint, requestOptions{}, &resp); err != nil {
		return nil, err
	}

	return prefixed(resp.Subdomains, domain), nil
}
