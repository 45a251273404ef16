package model

import "time"

// Comment is an append-only remark left on a project.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"conteudo" gorm:"column:conteudo;type:text;not null"`
	CreatedAt time.Time `json:"criado_em" gorm:"column:criado_em;not null;index"`
	UserID    uint      `json:"usuario_id" gorm:"column:usuario_id;not null;index"`
	ProjectID uint      `json:"projeto_id" gorm:"column:projeto_id;not null;index"`

	User *User `json:"usuario,omitempty" gorm:"foreignKey:UserID"`
}

// TableName overrides the default table name.
func (Comment) TableName() string { return "comentarios" }
