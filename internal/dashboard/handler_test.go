package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/contrato"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

// usuariosFake implementa usuario.Repository sobre uma fatia em memória,
// registrando as promoções persistidas.
type usuariosFake struct {
	usuarios   []usuario.Usuario
	promovidos map[uint]string
}

func (f *usuariosFake) BuscarPorEmail(db *gorm.DB, email string) (*usuario.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *usuariosFake) BuscarPorID(db *gorm.DB, id uint) (*usuario.Usuario, error) {
	for i := range f.usuarios {
		if f.usuarios[i].ID == id {
			return &f.usuarios[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *usuariosFake) ListarTodos(db *gorm.DB) ([]usuario.Usuario, error) {
	return f.usuarios, nil
}

func (f *usuariosFake) Salvar(db *gorm.DB, u *usuario.Usuario) error { return nil }

func (f *usuariosFake) Atualizar(db *gorm.DB, id uint, novosDados *usuario.UpdateUsuarioRequest) error {
	return nil
}

func (f *usuariosFake) AtualizarNivel(db *gorm.DB, id uint, nivel string) error {
	if f.promovidos == nil {
		f.promovidos = map[uint]string{}
	}
	f.promovidos[id] = nivel
	for i := range f.usuarios {
		if f.usuarios[i].ID == id {
			f.usuarios[i].Nivel = nivel
		}
	}
	return nil
}

func (f *usuariosFake) AtualizarStatus(db *gorm.DB, u *usuario.Usuario) error { return nil }

func (f *usuariosFake) ContarLiderados(db *gorm.DB, id uint) (int64, error) { return 0, nil }

func (f *usuariosFake) Deletar(db *gorm.DB, id uint) error { return nil }

// contratosFake implementa contrato.Repository devolvendo uma fatia fixa.
type contratosFake struct {
	contratos []contrato.Contrato
}

func (f *contratosFake) Criar(db *gorm.DB, c *contrato.Contrato) error { return nil }

func (f *contratosFake) BuscarPorID(db *gorm.DB, id uint) (*contrato.Contrato, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *contratosFake) ListarTodos(db *gorm.DB) ([]contrato.Contrato, error) {
	return f.contratos, nil
}

func (f *contratosFake) ListarPorParticipantes(db *gorm.DB, ids []uint) ([]contrato.Contrato, error) {
	return f.contratos, nil
}

func (f *contratosFake) ContarPorParticipante(db *gorm.DB, usuarioID uint) (int64, error) {
	return 0, nil
}

func (f *contratosFake) Salvar(db *gorm.DB, c *contrato.Contrato) error { return nil }

func (f *contratosFake) Deletar(db *gorm.DB, id uint) error { return nil }

func novoHandler(usuarios []usuario.Usuario, contratos []contrato.Contrato) (*Handler, *usuariosFake) {
	fakeU := &usuariosFake{usuarios: usuarios}
	h := &Handler{
		Usuarios:  fakeU,
		Contratos: &contratosFake{contratos: contratos},
		Agora: func() time.Time {
			return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
	}
	return h, fakeU
}

func TestCalcularPersistePromocao(t *testing.T) {
	usuarios := []usuario.Usuario{{
		ID:     1,
		Nome:   "Ana",
		Papel:  usuario.PapelComercial,
		Status: usuario.StatusAprovado,
		Nivel:  usuario.NivelJunior,
	}}
	contratos := []contrato.Contrato{{
		Nome:            "grande",
		Data:            time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		MargemMensal:    15000,
		DuracaoMeses:    12,
		DesenvolvedorID: 1,
	}}

	h, fakeU := novoHandler(usuarios, contratos)

	m, err := h.Calcular(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, usuario.NivelSenior, m.PromovidoPara)
	require.Equal(t, usuario.NivelSenior, fakeU.promovidos[1])

	// segunda passada: nível já persistido, nada a promover de novo
	m, err = h.Calcular(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, m.PromovidoPara)
	require.Equal(t, usuario.NivelSenior, m.NivelAtual)
}

func TestCalcularUsuarioInexistente(t *testing.T) {
	h, fakeU := novoHandler(nil, nil)

	m, err := h.Calcular(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, uint(42), m.UsuarioID)
	require.Equal(t, 0.0, m.ComissaoTotal)
	require.Empty(t, fakeU.promovidos)
}
