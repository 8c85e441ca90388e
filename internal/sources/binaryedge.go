package sources

import (
	"context"
	"fmt"
)

type binaryEdge struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewBinaryEdge(apiKey string) *binaryEdge {
	return &binaryEdge{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.binaryedge.io",
	}
}

func (s *binaryEdge) Name() string { return "binaryedge" }

func (s *binaryEdge) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Events []string `json:"events"`
	}
	url := fmt.Sprintf("%s/v2/query/domains/subdomain/%s", s.baseURL, domain)
	err := s.client.getJSON(ctx, url, requestOptions{
		headers: map[string]string{"X-Key": s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Events, nil
}
