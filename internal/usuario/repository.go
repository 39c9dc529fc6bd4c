package usuario

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	Atualizar(db *gorm.DB, id uint, novosDados *UpdateUsuarioRequest) error
	AtualizarNivel(db *gorm.DB, id uint, nivel string) error
	AtualizarStatus(db *gorm.DB, u *Usuario) error
	ContarLiderados(db *gorm.DB, id uint) (int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *UpdateUsuarioRequest) error {
	var existente Usuario
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	if novosDados.Nome != nil {
		existente.Nome = *novosDados.Nome
	}
	if novosDados.Sobrenome != nil {
		existente.Sobrenome = *novosDados.Sobrenome
	}
	if novosDados.Telefone != nil {
		existente.Telefone = *novosDados.Telefone
	}
	if novosDados.Foto != nil {
		existente.Foto = *novosDados.Foto
	}

	return db.Save(&existente).Error
}

// AtualizarNivel persiste apenas o nível de carreira. Usado pelo caminho de
// promoção do dashboard, que precisa ser explícito e separado da leitura.
func (r *repositoryImpl) AtualizarNivel(db *gorm.DB, id uint, nivel string) error {
	return db.Model(&Usuario{}).Where("id = ?", id).Update("nivel", nivel).Error
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, u *Usuario) error {
	return db.Model(&Usuario{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"status":      u.Status,
		"lider_id":    u.LiderID,
		"admin_id":    u.AdminID,
		"aprovado_em": u.AprovadoEm,
	}).Error
}

func (r *repositoryImpl) ContarLiderados(db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.Model(&Usuario{}).Where("lider_id = ?", id).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}

// MarcarAprovado preenche os campos de aprovação no próprio modelo.
func (u *Usuario) MarcarAprovado(liderID, adminID *uint) {
	now := time.Now()
	u.Status = StatusAprovado
	u.LiderID = liderID
	u.AdminID = adminID
	u.AprovadoEm = &now
}
