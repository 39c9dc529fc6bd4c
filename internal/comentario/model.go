package comentario

import "gorm.io/gorm"

type Comentario struct {
	gorm.Model
	Texto        string `gorm:"type:text;not null" json:"texto"`
	NegociacaoID uint   `gorm:"not null;index" json:"negociacaoId"`
	AutorID      *uint  `json:"autorId,omitempty"` // nil para comentários do sistema
	Sistema      bool   `gorm:"default:false" json:"sistema"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comentario{})
}
