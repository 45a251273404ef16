package model

import (
	"strings"
	"time"
)

// Project is a showcase entry. The Images field keeps uploaded image paths
// comma-joined, in upload order.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Subtitle    string    `json:"subtitulo" gorm:"column:subtitulo;size:255"`
	Description string    `json:"descricao" gorm:"column:descricao;type:text;not null"`
	Type        string    `json:"tipo" gorm:"column:tipo;size:100;index"`
	Course      string    `json:"curso" gorm:"column:curso;size:100;index"`
	Images      string    `json:"-" gorm:"column:estrutura;type:text"`
	Document    string    `json:"arquivo,omitempty" gorm:"column:arquivo;size:500"`
	Likes       int       `json:"curtidas" gorm:"column:curtidas;not null;default:0;index"`
	UserID      uint      `json:"usuario_id" gorm:"column:usuario_id;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// UserLiked is computed per request for the current user.
	UserLiked bool `json:"user_liked" gorm:"-"`

	// Relations
	Owner         *User         `json:"usuario,omitempty" gorm:"foreignKey:UserID"`
	Authors       []Author      `json:"autores,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Objectives    []Objective   `json:"objetivos,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Methodologies []Methodology `json:"metodologias,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Links         []Link        `json:"links,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Comments      []Comment     `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (Project) TableName() string { return "projetos" }

// ImageList splits the stored image paths, skipping blanks.
func (p *Project) ImageList() []string {
	var out []string
	for _, img := range strings.Split(p.Images, ",") {
		if strings.TrimSpace(img) != "" {
			out = append(out, img)
		}
	}
	return out
}

// SetImageList stores image paths comma-joined.
func (p *Project) SetImageList(images []string) {
	p.Images = strings.Join(images, ",")
}
