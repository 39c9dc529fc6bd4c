package consultor

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Consultor) error
	BuscarPorID(db *gorm.DB, id uint) (*Consultor, error)
	ListarTodos(db *gorm.DB) ([]Consultor, error)
	ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Consultor, error)
	Salvar(db *gorm.DB, c *Consultor) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Consultor) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	var consultor Consultor
	err := db.First(&consultor, id).Error
	return &consultor, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Where("criado_por IN ? OR atribuido_a IN ?", ids, ids).Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Consultor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Consultor{}, id).Error
}
