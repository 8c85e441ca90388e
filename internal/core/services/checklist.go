package services

import "github.com/G381N/bug-besty/internal/domain"

type checklistEntry struct {
	Type     string
	Severity string
}

// defaultChecklist is the per-subdomain vulnerability checklist seeded
// when a subdomain first enters a project.
var defaultChecklist = []checklistEntry{
	{"Subdomain Takeover", "Critical"},
	{"SQL Injection", "Critical"},
	{"Remote Code Execution", "Critical"},
	{"Authentication Bypass", "High"},
	{"Stored XSS", "High"},
	{"SSRF", "High"},
	{"IDOR", "High"},
	{"Reflected XSS", "Medium"},
	{"CSRF", "Medium"},
	{"Open Redirect", "Medium"},
	{"CORS Misconfiguration", "Medium"},
	{"Directory Listing", "Low"},
	{"Missing Security Headers", "Low"},
	{"Information Disclosure", "Low"},
}

func DefaultChecklist(subdomainID uint) []domain.Vulnerability {
	vulns := make([]domain.Vulnerability, len(defaultChecklist))
	for i, entry := range defaultChecklist {
		vulns[i] = domain.Vulnerability{
			SubdomainID: subdomainID,
			Type:        entry.Type,
			Severity:    entry.Severity,
			Status:      domain.VulnStatusNotYetDone,
		}
	}
	return vulns
}
