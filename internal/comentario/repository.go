package comentario

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *Comentario) error {
	return r.DB.Create(c).Error
}

func (r *Repository) ListarPorNegociacao(negociacaoID uint) ([]Comentario, error) {
	var list []Comentario
	err := r.DB.Where("negociacao_id = ?", negociacaoID).Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*Comentario, error) {
	var c Comentario
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Deletar(c *Comentario) error {
	return r.DB.Delete(c).Error
}
