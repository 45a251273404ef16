package model

// Objective is one bullet of a project's objectives list.
type Objective struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProjectID   uint   `json:"projeto_id" gorm:"column:projeto_id;not null;index"`
	Description string `json:"descricao" gorm:"column:descricao;type:text;not null"`
	Position    int    `json:"posicao" gorm:"column:posicao;not null;default:0"`
}

// TableName overrides the default table name.
func (Objective) TableName() string { return "objetivos" }

// Methodology is one bullet of a project's methodology list.
type Methodology struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProjectID   uint   `json:"projeto_id" gorm:"column:projeto_id;not null;index"`
	Description string `json:"descricao" gorm:"column:descricao;type:text;not null"`
	Position    int    `json:"posicao" gorm:"column:posicao;not null;default:0"`
}

// TableName overrides the default table name.
func (Methodology) TableName() string { return "metodologias" }
