package sources

import (
	"context"
	"fmt"
	"net/url"
)

type netlas struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewNetlas(apiKey string) *netlas {
	return &netlas{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://app.netlas.io",
	}
}

func (s *netlas) Name() string { return "netlas" }

func (s *netlas) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Items []struct {
			Data struct {
				Domain string `json:"domain"`
			} `json:"data"`
		} `json:"items"`
	}
	endpoint := fmt.Sprintf("%s/api/domains/?q=%s", s.baseURL, url.QueryEscape(fmt.Sprintf("domain:*.%s", domain)))
	err := s.client.getJSON(ctx, endpoint, requestOptions{
		headers: map[string]string{"X-API-Key": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	hostnames := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Data.Domain != "" {
			hostnames = append(hostnames, item.Data.Domain)
		}
	}
	return hostnames, nil
}
