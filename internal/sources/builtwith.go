package sources

import (
	"context"
	"fmt"
	"net/url"
)

type builtWith struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewBuiltWith(apiKey string) *builtWith {
	return &builtWith{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.builtwith.com",
	}
}

func (s *builtWith) Name() string { return "builtwith" }

func (s *builtWith) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Results []struct {
			Result struct {
				Paths []struct {
					SubDomain string `json:"SubDomain"`
				} `json:"Paths"`
			} `json:"Result"`
		} `json:"Results"`
	}
	endpoint := fmt.Sprintf("%s/v21/api.json?KEY=%s&LOOKUP=%s", s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(domain))
	if err := s.client.getJSON(ctx, endpoint, requestOptions{}, &resp); err != nil {
		return nil, err
	}

	var subs []string
	for _, result := range resp.Results {
		for _, path := range result.Result.Paths {
			if path.SubDomain != "" {
				subs = append(subs, path.SubDomain)
			}
		}
	}
	return prefixed(subs, domain), nil
}
