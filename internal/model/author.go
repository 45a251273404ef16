package model

// Author credits a person on a project. Co-authors reference an existing
// user; authors without an account use the free-text fields.
type Author struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ProjectID  uint   `json:"projeto_id" gorm:"column:projeto_id;not null;index"`
	UserID     *uint  `json:"usuario_id,omitempty" gorm:"column:usuario_id;index"`
	Name       string `json:"nome,omitempty" gorm:"column:nome;size:255"`
	Enrollment string `json:"matricula,omitempty" gorm:"column:matricula;size:50"`
	Kind       string `json:"tipo,omitempty" gorm:"column:tipo;size:50"`

	User *User `json:"usuario,omitempty" gorm:"foreignKey:UserID"`
}

// TableName overrides the default table name.
func (Author) TableName() string { return "autores" }

// DisplayName returns the linked user's name when present.
func (a Author) DisplayName() string {
	if a.User != nil && a.User.Name != "" {
		return a.User.Name
	}
	return a.Name
}
