package sources

import (
	"context"
	"fmt"
)

type certSpotter struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewCertSpotter(apiKey string) *certSpotter {
	return &certSpotter{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.certspotter.com",
	}
}

func (s *certSpotter) Name() string { return "certspotter" }

func (s *certSpotter) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp []struct {
		DNSNames []string `json:"dns_names"`
	}
	url := fmt.Sprintf("%s/v1/issuances?domain=%s&include_subdomains=true&expand=dns_names", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"Authorization": "Bearer " + s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	var hostnames []string
	for _, issuance := range resp {
		hostnames = append(hostnames, issuance.DNSNames...)
	}
	return hostnames, nil
}
