package cliente

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Cliente) error
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	ListarTodos(db *gorm.DB) ([]Cliente, error)
	ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Cliente, error)
	Salvar(db *gorm.DB, c *Cliente) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Cliente, error) {
	var clientes []Cliente
	err := db.Find(&clientes).Error
	return clientes, err
}

// ListarPorUsuarios filtra por criador ou responsável dentro do conjunto de
// IDs visível ao solicitante (a subárvore resolvida do organograma).
func (r *repositoryImpl) ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Cliente, error) {
	var clientes []Cliente
	err := db.Where("criado_por IN ? OR atribuido_a IN ?", ids, ids).Find(&clientes).Error
	return clientes, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Cliente{}, id).Error
}
