package sources

import (
	"context"
	"fmt"
)

type beVigil struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewBeVigil(apiKey string) *beVigil {
	return &beVigil{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://osint.bevigil.com",
	}
}

func (s *beVigil) Name() string { return "bevigil" }

func (s *beVigil) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Subdomains []string `json:"subdomains"`
	}
	url := fmt.Sprintf("%s/api/%s/subdomains/", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"X-Access-Token": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Subdomains, nil
}
