package domain

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusInitializing ProjectStatus = "initializing"
	ProjectStatusActive       ProjectStatus = "active"
	ProjectStatusArchived     ProjectStatus = "archived"
)

type SubdomainStatus string

const (
	SubdomainStatusScanning  SubdomainStatus = "scanning"
	SubdomainStatusActive    SubdomainStatus = "active"
	SubdomainStatusCompleted SubdomainStatus = "completed"
)

type VulnerabilityStatus string

const (
	VulnStatusNotYetDone VulnerabilityStatus = "Not Yet Done"
	VulnStatusFound      VulnerabilityStatus = "Found"
	VulnStatusNotFound   VulnerabilityStatus = "Not Found"
)

type DiscoveryMethod string

const (
	DiscoveryAutoEnumeration DiscoveryMethod = "auto_enumeration"
	DiscoveryManual          DiscoveryMethod = "manual"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Project struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"size:191" json:"name"`
	MainDomain      string        `gorm:"size:191" json:"main_domain"`
	Status          ProjectStatus `gorm:"size:32;index" json:"status"`
	OwnerID         uint          `gorm:"index" json:"owner_id"`
	SubdomainsCount int           `json:"subdomains_count"`

	// EnumerationTaskID references the in-flight (or last) enumeration
	// task in the task store. Empty for manually seeded projects.
	EnumerationTaskID string `gorm:"size:64" json:"enumeration_task_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Subdomain struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:255" json:"name"`
	ProjectID       uint            `gorm:"index" json:"project_id"`
	Status          SubdomainStatus `gorm:"size:32" json:"status"`
	DiscoveryMethod DiscoveryMethod `gorm:"size:32" json:"discovery_method"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Vulnerability struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SubdomainID uint                `gorm:"index" json:"subdomain_id"`
	Type        string              `gorm:"size:191" json:"type"`
	Severity    string              `gorm:"size:32" json:"severity"`
	Status      VulnerabilityStatus `gorm:"size:32" json:"status"`
	Notes       string              `json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ActivityEvent is an append-only timeline entry for a project
// (enumeration lifecycle, manual changes).
type ActivityEvent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID uint   `gorm:"index" json:"project_id"`
	Kind      string `gorm:"size:64" json:"kind"`
	Message   string `json:"message"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
