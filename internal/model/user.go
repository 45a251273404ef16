package model

import "time"

// Roles assigned to users. Roles other than RoleGuest come from SUAP.
const (
	RoleGuest   = "Visitante"
	RoleStudent = "Aluno"
	RoleStaff   = "Docente"
)

// User represents an IFNexus account, local or federated through SUAP.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nome" gorm:"column:nome;size:255;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:senha;size:255;not null"` // Never expose in JSON
	Enrollment   string    `json:"matricula,omitempty" gorm:"column:matricula;size:50"`
	BirthDate    string    `json:"data_nascimento,omitempty" gorm:"column:data_nascimento;size:20"`
	CPF          string    `json:"-" gorm:"column:cpf;size:20"`
	Role         string    `json:"tipo_usuario" gorm:"column:tipo_usuario;size:50;not null;default:'Visitante'"`
	Campus       string    `json:"campus,omitempty" gorm:"size:100"`
	Photo        string    `json:"foto,omitempty" gorm:"column:foto;size:500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "usuarios" }

// IsVerified reports whether the role was granted by SUAP and allows
// managing projects.
func IsVerified(role string) bool {
	return role == RoleStudent || role == RoleStaff
}
