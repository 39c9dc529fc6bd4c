package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Contrato representa um contrato de prestação fechado pela organização.
// A margem mensal pode vir explícita ou ser derivada da margem bruta pela
// duração em meses.
type Contrato struct {
	gorm.Model

	Nome string    `gorm:"size:255;not null" json:"nome"`
	Data time.Time `gorm:"not null;index" json:"data"` // início da vigência

	MargemBruta  float64 `gorm:"not null;default:0" json:"margemBruta"`  // total do contrato (€)
	MargemMensal float64 `gorm:"not null;default:0" json:"margemMensal"` // 0 = derivar de MargemBruta
	DuracaoMeses int     `gorm:"not null;default:1" json:"duracaoMeses"`

	// Participantes: desenvolvedor obrigatório, recrutador opcional.
	// Com os dois presentes, cada um recebe 50% da margem mensal.
	DesenvolvedorID uint  `gorm:"not null;index" json:"desenvolvedorId"`
	RecrutadorID    *uint `gorm:"index" json:"recrutadorId,omitempty"`

	CriadoPor uint `gorm:"not null" json:"criadoPor"`
}

// MargemMensalEfetiva é a derivação canônica da margem mensal: usa o valor
// explícito quando presente, senão divide a margem bruta pela duração
// (duração mínima 1 evita divisão por zero).
func (c Contrato) MargemMensalEfetiva() float64 {
	if c.MargemMensal > 0 {
		return c.MargemMensal
	}
	d := c.DuracaoMeses
	if d < 1 {
		d = 1
	}
	return c.MargemBruta / float64(d)
}

// DoisParticipantes diz se desenvolvedor e recrutador estão ambos definidos.
func (c Contrato) DoisParticipantes() bool {
	return c.DesenvolvedorID != 0 && c.RecrutadorID != nil && *c.RecrutadorID != 0
}

// Participa diz se o usuário ocupa algum dos papéis do contrato.
func (c Contrato) Participa(usuarioID uint) bool {
	if c.DesenvolvedorID == usuarioID {
		return true
	}
	return c.RecrutadorID != nil && *c.RecrutadorID == usuarioID
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contrato{})
}
