package contrato

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	ListarPorParticipantes(db *gorm.DB, ids []uint) ([]Contrato, error)
	ContarPorParticipante(db *gorm.DB, usuarioID uint) (int64, error)
	Salvar(db *gorm.DB, c *Contrato) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var contrato Contrato
	err := db.First(&contrato, id).Error
	return &contrato, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarPorParticipantes(db *gorm.DB, ids []uint) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Where("desenvolvedor_id IN ? OR recrutador_id IN ?", ids, ids).Find(&contratos).Error
	return contratos, err
}

// ContarPorParticipante conta contratos em que o usuário aparece como
// desenvolvedor ou recrutador. Usado pela guarda de exclusão de usuário.
func (r *repositoryImpl) ContarPorParticipante(db *gorm.DB, usuarioID uint) (int64, error) {
	var n int64
	err := db.Model(&Contrato{}).
		Where("desenvolvedor_id = ? OR recrutador_id = ?", usuarioID, usuarioID).
		Count(&n).Error
	return n, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Contrato) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Contrato{}, id).Error
}
