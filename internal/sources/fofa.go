package sources

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

type fofa struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewFofa(apiKey string) *fofa {
	return &fofa{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://fofa.info",
	}
}

func (s *fofa) Name() string { return "fofa" }

func (s *fofa) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	query := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf(`domain="%s"`, domain)))
	endpoint := fmt.Sprintf("%s/api/v1/search/all?key=%s&qbase64=%s&fields=host&size=100",
		s.baseURL, url.QueryEscape(s.apiKey), query)

	// Results come back as strings for a single-field query and as arrays
	// for multi-field queries; accept both.
	var resp struct {
		Error   bool              `json:"error"`
		Results []json.RawMessage `json:"results"`
	}
	if err := s.client.getJSON(ctx, endpoint, requestOptions{}, &resp); err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, fmt.Errorf("fofa query rejected")
	}

	var hostnames []string
	for _, raw := range resp.Results {
		var host string
		if err := json.Unmarshal(raw, &host); err != nil {
			var row []string
			if err := json.Unmarshal(raw, &row); err != nil || len(row) == 0 {
				continue
			}
			host = row[0]
		}
		host = strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		if host != "" {
			hostnames = append(hostnames, host)
		}
	}
	return hostnames, nil
}
