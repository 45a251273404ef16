package model

// LinkKind tells the project's main link apart from extra links.
type LinkKind string

const (
	LinkPrincipal LinkKind = "principal"
	LinkExtra     LinkKind = "extra"
)

// Link is a URL attached to a project.
type Link struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	ProjectID uint     `json:"projeto_id" gorm:"column:projeto_id;not null;index"`
	URL       string   `json:"url" gorm:"column:url;type:text;not null"`
	Kind      LinkKind `json:"tipo" gorm:"column:tipo;type:varchar(20);not null;default:'extra'"`
}

// TableName overrides the default table name.
func (Link) TableName() string { return "links" }
