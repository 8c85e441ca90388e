package sources

import (
	"context"
	"fmt"
	"strings"
)

// crtSh queries the crt.sh certificate transparency aggregator. It needs
// no credentials, so it is always live in the registry.
type crtSh struct {
	client  *client
	baseURL string
}

func NewCrtSh() *crtSh {
	return &crtSh{
		client:  newClient(),
		baseURL: "https://crt.sh",
	}
}

func (s *crtSh) Name() string { return "crtsh" }

func (s *crtSh) Fetch(ctx context.Context, domain string) ([]string, error) {
	var records []struct {
		NameValue string `json:"name_value"`
	}
	url := fmt.Sprintf("%s/?q=%%25.%s&output=json", s.baseURL, domain)
	if err := s.client.getJSON(ctx, url, requestOptions{}, &records); err != nil {
		return nil, err
	}

	var hostnames []string
	for _, record := range records {
		// name_value may pack several SANs separated by newlines.
		for _, name := range strings.Split(record.NameValue, "\n") {
			name = strings.TrimSpace(name)
			name = strings.TrimPrefix(name, "*.")
			if name != "" {
				hostnames = append(hostnames, name)
			}
		}
	}
	return hostnames, nil
}
