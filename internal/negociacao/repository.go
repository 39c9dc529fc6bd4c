package negociacao

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, n *Negociacao) error
	BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error)
	ListarTodas(db *gorm.DB) ([]Negociacao, error)
	ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Negociacao, error)
	Salvar(db *gorm.DB, n *Negociacao) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, n *Negociacao) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error) {
	var n Negociacao
	err := db.Preload("Comentarios").First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Negociacao, error) {
	var negociacoes []Negociacao
	err := db.Preload("Comentarios").Find(&negociacoes).Error
	return negociacoes, err
}

func (r *repositoryImpl) ListarPorUsuarios(db *gorm.DB, ids []uint) ([]Negociacao, error) {
	var negociacoes []Negociacao
	err := db.Preload("Comentarios").
		Where("criado_por IN ? OR atribuido_a IN ?", ids, ids).
		Find(&negociacoes).Error
	return negociacoes, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, n *Negociacao) error {
	return db.Save(n).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Negociacao{}, id).Error
}
