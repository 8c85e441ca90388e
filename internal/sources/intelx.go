package sources

import (
	"context"
	"fmt"
)

// intelX uses the two-step phonebook flow: submit a search, then collect
// the result set under the returned search id. Both calls share the same
// bounded timeout through the request context.
type intelX struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewIntelX(apiKey string) *intelX {
	return &intelX{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://2.intelx.io",
	}
}

func (s *intelX) Name() string { return "intelx" }

func (s *intelX) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	headers := map[string]string{"x-key": s.apiKey}

	var search struct {
		ID string `json:"id"`
	}
	body := fmt.Sprintf(`{"term":"%s","maxresults":1000,"media":0,"target":1}`, domain)
	err := s.client.getJSON(ctx, s.baseURL+"/phonebook/search", requestOptions{
		method:  "POST",
		body:    body,
		headers: headers,
	}, &search)
	if err != nil {
		return nil, err
	}

	var result struct {
		Selectors []struct {
			SelectorValue string `json:"selectorvalue"`
		} `json:"selectors"`
	}
	url := fmt.Sprintf("%s/phonebook/search/result?id=%s&limit=1000", s.baseURL, search.ID)
	if err := s.client.getJSON(ctx, url, requestOptions{headers: headers}, &result); err != nil {
		return nil, err
	}

	hostnames := make([]string, 0, len(result.Selectors))
	for _, selector := range result.Selectors {
		hostnames = append(hostnames, selector.SelectorValue)
	}
	return hostnames, nil
}
