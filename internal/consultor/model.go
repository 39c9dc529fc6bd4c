package consultor

import "gorm.io/gorm"

// Consultor é o profissional alocado em um cliente (o "recurso" vendido);
// não confundir com os usuários da plataforma, que vivem em internal/usuario.
type Consultor struct {
	gorm.Model
	Nome        string `gorm:"size:100;not null" json:"nome"`
	Sobrenome   string `gorm:"size:100" json:"sobrenome"`
	Email       string `gorm:"size:100" json:"email"`
	Telefone    string `gorm:"size:20" json:"telefone"`
	Senioridade string `gorm:"size:50" json:"senioridade"` // ex.: "Pleno", "Sênior"

	ClienteID  *uint `gorm:"index" json:"clienteId,omitempty"` // alocação atual
	CriadoPor  uint  `gorm:"not null;index" json:"criadoPor"`
	AtribuidoA *uint `gorm:"index" json:"atribuidoA,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Consultor{})
}
