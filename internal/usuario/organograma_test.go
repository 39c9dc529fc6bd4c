package usuario

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func comercial(id uint, status string, liderID *uint) Usuario {
	return Usuario{ID: id, Papel: PapelComercial, Status: status, Nivel: NivelJunior, LiderID: liderID}
}

func TestResolverEquipeIncluiRaizSempre(t *testing.T) {
	// mesmo uma raiz pendente aparece no próprio conjunto
	usuarios := []Usuario{comercial(1, StatusPendente, nil)}
	require.Equal(t, map[uint]bool{1: true}, ResolverEquipe(1, usuarios))
}

func TestResolverEquipeIgnoraRejeitados(t *testing.T) {
	usuarios := []Usuario{
		comercial(1, StatusAprovado, nil),
		comercial(2, StatusRejeitado, ptr(1)),
		comercial(3, StatusAprovado, ptr(2)), // pendurado no rejeitado
	}
	equipe := ResolverEquipe(1, usuarios)
	require.False(t, equipe[2])
	// a aresta passa pelo rejeitado, então 3 também fica invisível
	require.False(t, equipe[3])
}

func TestTodosAprovados(t *testing.T) {
	usuarios := []Usuario{
		comercial(1, StatusAprovado, nil),
		comercial(2, StatusPendente, nil),
		comercial(3, StatusRejeitado, nil),
	}
	require.Equal(t, map[uint]bool{1: true}, TodosAprovados(usuarios))
}

func TestCriaCicloDeLideranca(t *testing.T) {
	// cadeia 1 <- 2 <- 3
	usuarios := []Usuario{
		comercial(1, StatusAprovado, nil),
		comercial(2, StatusAprovado, ptr(1)),
		comercial(3, StatusAprovado, ptr(2)),
	}

	// 1 virar liderado de 3 fecharia o ciclo
	require.True(t, CriaCicloDeLideranca(usuarios, 1, 3))
	// auto-liderança também
	require.True(t, CriaCicloDeLideranca(usuarios, 2, 2))
	// 3 trocar para o líder 1 é só um reencaixe válido
	require.False(t, CriaCicloDeLideranca(usuarios, 3, 1))
}

func TestCriaCicloComDadosJaCorrompidos(t *testing.T) {
	// 4 e 5 já formam um ciclo entre si; a checagem precisa terminar
	usuarios := []Usuario{
		comercial(4, StatusAprovado, ptr(5)),
		comercial(5, StatusAprovado, ptr(4)),
		comercial(6, StatusAprovado, nil),
	}
	require.True(t, CriaCicloDeLideranca(usuarios, 6, 4))
}
