package db

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"ifnexus/internal/model"
)

// tables lists every model in dependency order (parents first).
func tables() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Project{},
		&model.Author{},
		&model.Objective{},
		&model.Methodology{},
		&model.Link{},
		&model.Comment{},
		&model.Like{},
	}
}

// Migrate creates or updates the schema. When reset is true every table is
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		all := tables()
		for i := len(all) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(all[i]); err != nil {
				log.Warn().Err(err).Msg("failed to drop table (may not exist)")
			}
		}
	}

	if err := db.AutoMigrate(tables()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
