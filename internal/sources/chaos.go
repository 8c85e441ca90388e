package sources

import (
	"context"
	"fmt"
)

type chaos struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewChaos(apiKey string) *chaos {
	return &chaos{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://dns.projectdiscovery.io",
	}
}

func (s *chaos) Name() string { return "chaos" }

func (s *chaos) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Subdomains []string `json:"subdomains"`
	}
	url := fmt.Sprintf("%s/dns/%s/subdomains", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"Authorization": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return prefixed(resp.Subdomains, domain), nil
}
