package sources

import (
	"context"
	"fmt"
)

type fullHunt struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewFullHunt(apiKey string) *fullHunt {
	return &fullHunt{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://fullhunt.io",
	}
}

func (s *fullHunt) Name() string { return "fullhunt" }

func (s *fullHunt) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Hosts []string `json:"hosts"`
	}
	url := fmt.Sprintf("%s/api/v1/domain/%s/subdomains", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"X-API-KEY": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Hosts, nil
}
