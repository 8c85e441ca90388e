package sources

import (
	"github.com/G381N/bug-besty/internal/config"
	"github.com/G381N/bug-besty/internal/core/ports"
)

// NewRegistry builds the ordered source registry. The order is part of the
// resumption contract: the task driver persists progress as a high-water
// index into this slice, so entries must never be reordered between
// deployments while tasks are in flight.
func NewRegistry(cfg config.EnumerationConfig) []ports.Source {
	return []ports.Source{
		NewSecurityTrails(cfg.SecurityTrails),
		NewCensys(cfg.CensysID, cfg.CensysSecret),
		NewCertSpotter(cfg.CertSpotter),
		NewBinaryEdge(cfg.BinaryEdge),
		NewBuiltWith(cfg.BuiltWith),
		NewFofa(cfg.Fofa),
		NewFullHunt(cfg.FullHunt),
		NewGitHub(cfg.GitHub),
		NewIntelX(cfg.IntelX),
		NewLeakIX(cfg.LeakIX),
		NewNetlas(cfg.Netlas),
		NewBeVigil(cfg.BeVigil),
		NewChaos(cfg.Chaos),
		NewShodan(cfg.Shodan),
		NewCrtSh(),
	}
}
