package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"personal-workspace/internal/domain"
)

// MigrateDB brings the schema up to date. users and diaries are created with
// explicit DDL so their unique keys match the legacy schema; everything else
// goes through AutoMigrate.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := ensureTable(db, "users", createUsersTableSQL, &domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := ensureTable(db, "diaries", createDiariesTableSQL, &domain.DiaryEntry{}); err != nil {
		return fmt.Errorf("failed to migrate diaries table: %w", err)
	}

	err := db.AutoMigrate(
		&domain.Post{},
		&domain.Comment{},
		&domain.Todo{},
		&domain.Activity{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate other tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// ensureTable creates table with ddl when it is missing, otherwise lets
// AutoMigrate add columns and indexes that model gained since.
func ensureTable(db *gorm.DB, table, ddl string, model interface{}) error {
	var count int64
	err := db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", table).
		Scan(&count).Error
	if err != nil {
		return fmt.Errorf("failed to inspect table %s: %w", table, err)
	}

	if count == 0 {
		if err := db.Exec(ddl).Error; err != nil {
			logrus.Errorf("Failed to create %s table: %v", table, err)
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
		logrus.Infof("%s table created successfully", table)
		return nil
	}

	if err := db.AutoMigrate(model); err != nil {
		return fmt.Errorf("failed to update %s table: %w", table, err)
	}
	logrus.Infof("%s table schema checked/updated successfully", table)
	return nil
}

const createUsersTableSQL = `
CREATE TABLE users (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(191) NOT NULL,
	password TEXT NOT NULL,
	created_at DATETIME(3),
	UNIQUE INDEX idx_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`

const createDiariesTableSQL = `
CREATE TABLE diaries (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT UNSIGNED NOT NULL,
	entry_date DATE NOT NULL,
	title VARCHAR(255),
	content TEXT NOT NULL,
	created_at DATETIME(3),
	updated_at DATETIME(3),
	UNIQUE INDEX idx_user_entry_date (user_id, entry_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
`
