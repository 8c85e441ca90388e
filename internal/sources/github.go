package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
)

// gitHub scans code search text matches for hostnames under the target
// domain. It is noisy by nature; the coordinator's suffix filter discards
// anything out of scope.
type gitHub struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewGitHub(apiKey string) *gitHub {
	return &gitHub{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://api.github.com",
	}
}

func (s *gitHub) Name() string { return "github" }

func (s *gitHub) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	var resp struct {
		Items []struct {
			TextMatches []struct {
				Fragment string `json:"fragment"`
			} `json:"text_matches"`
		} `json:"items"`
	}
	endpoint := fmt.Sprintf("%s/search/code?q=%s&per_page=100", s.baseURL, url.QueryEscape(fmt.Sprintf("%q", domain)))
	err := s.client.getJSON(ctx, endpoint, requestOptions{
		headers: map[string]string{
			"Authorization": "token " + s.apiKey,
			"Accept":        "application/vnd.github.v3.text-match+json",
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	hostPattern, err := regexp.Compile(`(?i)([a-z0-9][a-z0-9-]*\.)+` + regexp.QuoteMeta(domain))
	if err != nil {
		return nil, err
	}

	var hostnames []string
	for _, item := range resp.Items {
		for _, match := range item.TextMatches {
			hostnames = append(hostnames, hostPattern.FindAllString(match.Fragment, -1)...)
		}
	}
	return hostnames, nil
}
