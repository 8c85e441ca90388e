package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G381N/bug-besty/internal/config"
)

func TestRegistryOrderIsStable(t *testing.T) {
	registry := NewRegistry(config.EnumerationConfig{})

	names := make([]string, len(registry))
	for i, src := range registry {
		names[i] = src.Name()
	}

	assert.Equal(t, []string{
		"securitytrails",
		"censys",
		"certspotter",
		"binaryedge",
		"builtwith",
		"fofa",
		"fullhunt",
		"github",
		"intelx",
		"leakix",
		"netlas",
		"bevigil",
		"chaos",
		"shodan",
		"crtsh",
	}, names)
}

func TestMissingCredentialsShortCircuit(t *testing.T) {
	// Every keyed source must return empty without touching the network
	// when its credentials are absent; only crt.sh is credential-free.
	registry := NewRegistry(config.EnumerationConfig{})

	for _, src := range registry {
		if src.Name() == "crtsh" {
			continue
		}
		hostnames, err := src.Fetch(context.Background(), "example.com")
		assert.NoError(t, err, src.Name())
		assert.Empty(t, hostnames, src.Name())
	}
}

func TestCrtShParsesCertificateNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.Equal(t, "%.example.com", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("output"))
		w.Write([]byte(`[
			{"name_value": "www.example.com\napi.example.com"},
			{"name_value": "*.example.com"},
			{"name_value": "mail.example.com"}
		]`))
	}))
	defer server.Close()

	src := NewCrtSh()
	src.baseURL = server.URL

	hostnames, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"www.example.com",
		"api.example.com",
		"example.com",
		"mail.example.com",
	}, hostnames)
}

func TestShodanPrefixesSubdomainLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dns/domain/example.com", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Write([]byte(`{"subdomains": ["www", "api", ""]}`))
	}))
	defer server.Close()

	src := NewShodan("secret")
	src.baseURL = server.URL

	hostnames, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com", "api.example.com"}, hostnames)
}

func TestSecurityTrailsSendsAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domain/example.com/subdomains", r.URL.Path)
		assert.Equal(t, "st-key", r.Header.Get("APIKEY"))
		w.Write([]byte(`{"subdomains": ["dev", "staging"]}`))
	}))
	defer server.Close()

	src := NewSecurityTrails("st-key")
	src.baseURL = server.URL

	hostnames, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev.example.com", "staging.example.com"}, hostnames)
}

func TestFetchErrorOnUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	src := NewCrtSh()
	src.baseURL = server.URL

	_, err := src.Fetch(context.Background(), "example.com")
	assert.Error(t, err)
}
