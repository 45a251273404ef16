package model

// Like records that a user liked a project. The composite unique index keeps
// at most one like per user and project.
type Like struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"usuario_id" gorm:"column:usuario_id;not null;uniqueIndex:idx_curtida_usuario_projeto"`
	ProjectID uint `json:"projeto_id" gorm:"column:projeto_id;not null;uniqueIndex:idx_curtida_usuario_projeto;index"`
}

// TableName overrides the default table name.
func (Like) TableName() string { return "curtidas" }
