package ports

import "context"

// Source is one external reconnaissance integration. Fetch returns
// candidate hostnames for the domain within a bounded timeout; network,
// auth and parse failures come back as ordinary errors and are absorbed
// by the coordinator — one flaky source never poisons a chunk. A source
// whose credentials are not configured returns an empty result without
// touching the network. Returned hostnames are candidates only; the
// coordinator applies scope filtering and deduplication.
type Source interface {
	Name() string
	Fetch(ctx context.Context, domain string) ([]string, error)
}
