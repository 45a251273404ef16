package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ifnexus/internal/model"
)

// forUpdate adds a row-level lock to the query. SQLite locks the whole
// database for a write transaction and has no FOR UPDATE syntax.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// recountLikes sets each project's counter to its number of like rows.
func recountLikes(db *gorm.DB, projectIDs []uint) error {
	if len(projectIDs) == 0 {
		return nil
	}
	return db.Model(&model.Project{}).
		Where("id IN ?", projectIDs).
		UpdateColumn("curtidas", gorm.Expr("(SELECT COUNT(*) FROM curtidas WHERE curtidas.projeto_id = projetos.id)")).Error
}
