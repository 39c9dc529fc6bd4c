package comissao

import "github.com/VendaSys/api-vendas/internal/usuario"

// Escada fixa de carreira, do primeiro ao último degrau. Promoção anda um
// degrau por vez, nunca pula e nunca regride.
var Escada = []string{
	usuario.NivelJunior,
	usuario.NivelSenior,
	usuario.NivelLiderEquipe,
	usuario.NivelSocio,
	usuario.NivelDiretorExecutivo,
	usuario.NivelDiretorGeral,
}

// Taxa de comissão por nível de carreira.
var taxas = map[string]float64{
	usuario.NivelJunior:           0.05,
	usuario.NivelSenior:           0.10,
	usuario.NivelLiderEquipe:      0.15,
	usuario.NivelSocio:            0.20,
	usuario.NivelDiretorExecutivo: 0.25,
	usuario.NivelDiretorGeral:     0.30,
}

// MembrosNecessarios é a condição de desenvolvimento de equipe de um
// requisito: quantos liderados DIRETOS precisam estar em (ou acima de) um nível.
type MembrosNecessarios struct {
	Nivel      string
	Quantidade int
}

// RequisitoNivel é a linha da tabela de promoção para chegar em Nivel.
// ReceitaGrupo igual a zero significa "sem exigência de grupo" (satisfeita).
type RequisitoNivel struct {
	Nivel          string
	ReceitaPessoal float64
	ReceitaGrupo   float64
	CondicaoOu     bool
	Membros        *MembrosNecessarios
}

// Tabela de requisitos, indexada pelo nível de DESTINO.
var requisitos = map[string]RequisitoNivel{
	usuario.NivelSenior: {
		Nivel:          usuario.NivelSenior,
		ReceitaPessoal: 15000,
	},
	usuario.NivelLiderEquipe: {
		Nivel:          usuario.NivelLiderEquipe,
		ReceitaPessoal: 20000,
		ReceitaGrupo:   50000,
		CondicaoOu:     true,
		Membros:        &MembrosNecessarios{Nivel: usuario.NivelSenior, Quantidade: 2},
	},
	usuario.NivelSocio: {
		Nivel:          usuario.NivelSocio,
		ReceitaPessoal: 30000,
		ReceitaGrupo:   150000,
		Membros:        &MembrosNecessarios{Nivel: usuario.NivelLiderEquipe, Quantidade: 2},
	},
	usuario.NivelDiretorExecutivo: {
		Nivel:          usuario.NivelDiretorExecutivo,
		ReceitaPessoal: 40000,
		ReceitaGrupo:   400000,
		Membros:        &MembrosNecessarios{Nivel: usuario.NivelSocio, Quantidade: 2},
	},
	usuario.NivelDiretorGeral: {
		Nivel:          usuario.NivelDiretorGeral,
		ReceitaPessoal: 50000,
		ReceitaGrupo:   1000000,
		Membros:        &MembrosNecessarios{Nivel: usuario.NivelDiretorExecutivo, Quantidade: 2},
	},
}

// Taxa devolve a taxa de comissão do nível; nível desconhecido vale 0.
func Taxa(nivel string) float64 {
	return taxas[nivel]
}

// Ordem devolve a posição do nível na escada (-1 para desconhecido).
func Ordem(nivel string) int {
	for i, n := range Escada {
		if n == nivel {
			return i
		}
	}
	return -1
}

// ProximoNivel devolve o degrau seguinte; false no topo da escada.
func ProximoNivel(nivel string) (string, bool) {
	i := Ordem(nivel)
	if i < 0 || i >= len(Escada)-1 {
		return "", false
	}
	return Escada[i+1], true
}

// RequisitoPara devolve a linha de requisitos do nível de destino.
func RequisitoPara(nivel string) (RequisitoNivel, bool) {
	req, ok := requisitos[nivel]
	return req, ok
}
