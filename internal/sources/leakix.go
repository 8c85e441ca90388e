package sources

import (
	"context"
	"fmt"
)

type leakIX struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewLeakIX(apiKey string) *leakIX {
	return &leakIX{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://leakix.net",
	}
}

func (s *leakIX) Name() string { return "leakix" }

func (s *leakIX) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp []struct {
		Subdomain string `json:"subdomain"`
	}
	url := fmt.Sprintf("%s/api/subdomains/%s", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"api-key": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	hostnames := make([]string, 0, len(resp))
	for _, entry := range resp {
		if entry.Subdomain != "" {
			hostnames = append(hostnames, entry.Subdomain)
		}
	}
	return hostnames, nil
}
