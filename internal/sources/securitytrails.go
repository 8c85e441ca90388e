package sources

import (
	"context"
	"fmt"
)

type securityTrails struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewSecurityTrails(apiKey string) *securityTrails {
	return &securityTrails{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.securitytrails.com",
	}
}

func (s *securityTrails) Name() string { return "securitytrails" }

func (s *securityTrails) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Subdomains []string `json:"subdomains"`
	}
	url := fmt.Sprintf("%s/v1/domain/%s/subdomains", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"APIKEY": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return prefixed(resp.Subdomains, domain), nil
}
