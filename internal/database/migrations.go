package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes creates the composite indexes the hot listing queries rely on.
// AutoMigrate covers single-column indexes declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Public listings: active posts ordered by response count
		{"posts", "idx_posts_status_responses", "status, number_of_responses"},
		// A company's own post listing, optionally filtered by status
		{"posts", "idx_posts_company_status", "company_id, status"},
		// A user's application history in application order
		{"responses", "idx_responses_user_created", "user_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
