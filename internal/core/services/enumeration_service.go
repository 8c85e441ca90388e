package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

// EnumerationService coordinates the ordered registry of reconnaissance
// sources. It owns no persistent state: each RunChunk call is a pure
// computation over the registry window the caller asks for, which is what
// makes the task driver's resume-by-index scheme work. The registry order
// is fixed at construction; the same index always refers to the same
// source across invocations.
type EnumerationService struct {
	sources []ports.Source
	log     *logger.Logger
}

func NewEnumerationService(sources []ports.Source, log *logger.Logger) *EnumerationService {
	return &EnumerationService{sources: sources, log: log}
}

func (s *EnumerationService) TotalSources() int {
	return len(s.sources)
}

// RunChunk queries the sources in [startIndex, startIndex+chunkSize),
// clamped to the registry length, concurrently. Source failures are
// absorbed and logged; they never fail the chunk and never block the other
// sources' contributions. Hostnames that do not end with the queried
// domain are discarded.
func (s *EnumerationService) RunChunk(ctx context.Context, domain string, startIndex, chunkSize int) (*ports.ChunkResult, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	endAt := startIndex + chunkSize
	if endAt > len(s.sources) {
		endAt = len(s.sources)
	}
	if startIndex < 0 || startIndex >= endAt {
		return &ports.ChunkResult{Hostnames: []string{}, CompletedCount: min(max(startIndex, 0), len(s.sources))}, nil
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		found = make(map[string]struct{})
	)

	for i := startIndex; i < endAt; i++ {
		src := s.sources[i]
		wg.Add(1)
		go func() {
			defer wg.Done()

			hostnames, err := src.Fetch(ctx, domain)
			if err != nil {
				// Degraded to an empty contribution; the chunk still
				// advances past this source.
				s.log.Warnw("enumeration_source_failed",
					"source", src.Name(),
					"domain", domain,
					"error", err,
				)
				return
			}

			mu.Lock()
			for _, h := range hostnames {
				h = strings.ToLower(strings.TrimSpace(h))
				if h == "" || h == domain {
					continue
				}
				if !strings.HasSuffix(h, "."+domain) {
					continue
				}
				found[h] = struct{}{}
			}
			mu.Unlock()

			s.log.Infow("enumeration_source_done",
				"source", src.Name(),
				"domain", domain,
				"hostnames", len(hostnames),
			)
		}()
	}
	wg.Wait()

	hostnames := make([]string, 0, len(found))
	for h := range found {
		hostnames = append(hostnames, h)
	}
	sort.Strings(hostnames)

	return &ports.ChunkResult{
		Hostnames:      hostnames,
		CompletedCount: endAt,
	}, nil
}
