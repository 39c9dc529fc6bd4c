package negociacao

import (
	"time"

	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/comentario"
)

// Estágios aceitos para uma negociação.
const (
	EstagioProspeccao = "Prospecção"
	EstagioProposta   = "Proposta"
	EstagioFechada    = "Fechada"
	EstagioPerdida    = "Perdida"
)

// Negociacao representa uma oportunidade de negócio em andamento com um cliente.
type Negociacao struct {
	ID        uint           `gorm:"primaryKey" json:"negociacaoId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome      string  `gorm:"size:255;not null" json:"nome"`
	ClienteID *uint   `gorm:"index" json:"clienteId,omitempty"`
	Estagio   string  `gorm:"size:50;not null;default:'Prospecção'" json:"estagio"`
	Valor     float64 `gorm:"not null;default:0" json:"valor"` // valor estimado (€)

	CriadoPor  uint  `gorm:"not null;index" json:"criadoPor"`
	AtribuidoA *uint `gorm:"index" json:"atribuidoA,omitempty"`

	Comentarios []comentario.Comentario `gorm:"foreignKey:NegociacaoID" json:"comentarios"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Negociacao{})
}
