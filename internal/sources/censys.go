package sources

import (
	"context"
	"fmt"
)

type censys struct {
	client    *client
	apiID     string
	apiSecret string
	baseURL   string
}

func NewCensys(apiID, apiSecret string) *censys {
	return &censys{
		client:    newClient(),
		apiID:     apiID,
		apiSecret: apiSecret,
		baseURL:   "https://search.censys.io",
	}
}

func (s *censys) Name() string { return "censys" }

func (s *censys) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiID == "" || s.apiSecret == "" {
		return nil, nil
	}

	var resp struct {
		Result struct {
			Hits []struct {
				Parsed struct {
					Names []string `json:"names"`
				} `json:"parsed"`
			} `json:"hits"`
		} `json:"result"`
	}
	body := fmt.Sprintf(`{"query":"parsed.names: %s","per_page":100}`, domain)
	err := s.client.getJSON(ctx, s.baseURL+"/api/v2/certificates/search", requestOptions{
		method:    "POST",
		body:      body,
		basicUser: s.apiID,
		basicPass: s.apiSecret,
	}, &resp)
	if err != nil {
		return nil, err
	}

	var hostnames []string
	for _, hit := range resp.Result.Hits {
		hostnames = append(hostnames, hit.Parsed.Names...)
	}
	return hostnames, nil
}
