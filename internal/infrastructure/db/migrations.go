package db

import (
	"github.com/G381N/bug-besty/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Project{},
		&domain.Subdomain{},
		&domain.Vulnerability{},
		&domain.ActivityEvent{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// Re-running enumeration must never duplicate a hostname within a
	// project; the upsert path relies on this index.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_subdomains_project_name
		ON subdomains (project_id, name)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	// One active project per name per owner.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_owner_name_active
		ON projects (owner_id, name)
		WHERE status = 'active' AND deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_vulnerabilities_subdomain_status
		ON vulnerabilities (subdomain_id, status)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	return nil
}
