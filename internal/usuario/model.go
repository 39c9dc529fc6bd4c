package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Papéis de acesso
const (
	PapelComercial = "comercial"
	PapelAdmin     = "admin"
	PapelMaster    = "master"
)

// Status de cadastro
const (
	StatusPendente  = "Pendente"
	StatusAprovado  = "Aprovado"
	StatusRejeitado = "Rejeitado"
)

// Níveis de carreira (escada fixa de seis degraus)
const (
	NivelJunior           = "junior"
	NivelSenior           = "senior"
	NivelLiderEquipe      = "team_leader"
	NivelSocio            = "partner"
	NivelDiretorExecutivo = "executive_director"
	NivelDiretorGeral     = "managing_director"
)

// Usuario representa um vendedor da organização (ou um admin/master do back-office).
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome      string `gorm:"size:100;not null" json:"nome"`
	Sobrenome string `gorm:"size:100" json:"sobrenome"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Senha     string `gorm:"size:255;not null" json:"-"`
	Telefone  string `gorm:"size:20" json:"telefone"`
	Foto      string `gorm:"size:255" json:"foto"`

	Papel  string `gorm:"size:20;not null;default:'comercial';index" json:"papel"`
	Status string `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	Nivel  string `gorm:"size:30;not null;default:'junior'" json:"nivel"`

	// LiderID aponta para o líder direto; só pode referenciar um comercial aprovado.
	LiderID    *uint      `gorm:"index" json:"liderId,omitempty"`
	AdminID    *uint      `gorm:"index" json:"adminId,omitempty"`
	AprovadoEm *time.Time `json:"aprovadoEm,omitempty"`
}

// EhAdmin diz se o usuário enxerga a base inteira (admin ou master).
func (u Usuario) EhAdmin() bool {
	return u.Papel == PapelAdmin || u.Papel == PapelMaster
}

// Aprovado diz se o cadastro já passou pela aprovação.
func (u Usuario) Aprovado() bool {
	return u.Status == StatusAprovado
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
