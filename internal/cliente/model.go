package cliente

import "gorm.io/gorm"

// Cliente é a empresa atendida pela organização de vendas.
type Cliente struct {
	gorm.Model
	NomeEmpresa string `gorm:"size:255;not null" json:"nomeEmpresa"`
	CNPJ        string `gorm:"size:20;index" json:"cnpj"`
	Contato     string `gorm:"size:100" json:"contato"`
	Email       string `gorm:"size:100" json:"email"`
	Telefone    string `gorm:"size:20" json:"telefone"`
	UF          string `gorm:"size:2" json:"uf"`

	CriadoPor  uint  `gorm:"not null;index" json:"criadoPor"`
	AtribuidoA *uint `gorm:"index" json:"atribuidoA,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
