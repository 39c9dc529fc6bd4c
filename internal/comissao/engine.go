package comissao

import (
	"sort"
	"time"

	"github.com/VendaSys/api-vendas/internal/contrato"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

// MembroEquipe é o resumo de um liderado dentro das métricas do painel.
type MembroEquipe struct {
	ID       uint    `json:"id"`
	Nome     string  `json:"nome"`
	Nivel    string  `json:"nivel"`
	Receita  float64 `json:"receita"`
	Comissao float64 `json:"comissao"` // repasse que o líder ganha sobre este membro
}

// MetricasDashboard é o resultado completo do cálculo mensal de um usuário.
type MetricasDashboard struct {
	UsuarioID    uint   `json:"usuarioId"`
	NivelAtual   string `json:"nivelAtual"`
	ProximoNivel string `json:"proximoNivel,omitempty"`

	ReceitaPessoal float64 `json:"receitaPessoal"`
	ReceitaEquipe  float64 `json:"receitaEquipe"`
	ReceitaGrupo   float64 `json:"receitaGrupo"`

	ComissaoPessoal float64 `json:"comissaoPessoal"`
	ComissaoEquipe  float64 `json:"comissaoEquipe"`
	ComissaoTotal   float64 `json:"comissaoTotal"`

	ProgressoProximoNivel float64 `json:"progressoProximoNivel"`

	Equipe []MembroEquipe `json:"equipe"`

	// PromovidoPara é preenchido quando o cálculo detectou promoção; é o
	// chamador quem persiste o novo nível no usuário.
	PromovidoPara string `json:"promovidoPara,omitempty"`
}

// MetricasZeradas é o retorno seguro para usuário inexistente: o painel
// renderiza zeros em vez de quebrar.
func MetricasZeradas(usuarioID uint) MetricasDashboard {
	return MetricasDashboard{
		UsuarioID:  usuarioID,
		NivelAtual: usuario.NivelJunior,
		Equipe:     []MembroEquipe{},
	}
}

// nivelDe devolve o nível efetivo do usuário: admin e master ficam cravados
// no topo da escada, independente do que o cadastro carregue.
func nivelDe(u usuario.Usuario) string {
	if u.EhAdmin() {
		return usuario.NivelDiretorGeral
	}
	if Ordem(u.Nivel) < 0 {
		return usuario.NivelJunior
	}
	return u.Nivel
}

// AvaliarPromocao decide, sem efeito colateral, se o usuário sobe um degrau.
// Devolve o novo nível e true quando todos os requisitos do próximo degrau
// estão satisfeitos. Admin e master nunca são avaliados.
func AvaliarPromocao(u usuario.Usuario, agg ReceitaAgregada, usuarios []usuario.Usuario) (string, bool) {
	if u.EhAdmin() {
		return "", false
	}
	proximo, ok := ProximoNivel(nivelDe(u))
	if !ok {
		return "", false
	}
	req, ok := RequisitoPara(proximo)
	if !ok {
		return "", false
	}

	pessoalOK := agg.Pessoal >= req.ReceitaPessoal
	grupoOK := req.ReceitaGrupo > 0 && agg.Grupo >= req.ReceitaGrupo

	var receitaOK bool
	if req.CondicaoOu {
		receitaOK = pessoalOK || grupoOK
	} else {
		// Sem exigência de grupo, só a pessoal conta.
		receitaOK = pessoalOK && (req.ReceitaGrupo == 0 || grupoOK)
	}
	if !receitaOK {
		return "", false
	}

	if req.Membros != nil {
		minimo := Ordem(req.Membros.Nivel)
		conta := 0
		for _, m := range usuarios {
			if m.LiderID == nil || *m.LiderID != u.ID || !m.Aprovado() {
				continue
			}
			if Ordem(m.Nivel) >= minimo {
				conta++
			}
		}
		if conta < req.Membros.Quantidade {
			return "", false
		}
	}
	return proximo, true
}

// Progresso mede o avanço rumo ao próximo nível: a menor das razões de
// receita pessoal e de grupo, limitada a [0,1]. Sem exigência de grupo a
// razão de grupo não limita; no topo da escada o progresso satura em 1.
func Progresso(nivel string, agg ReceitaAgregada) float64 {
	proximo, ok := ProximoNivel(nivel)
	if !ok {
		return 1
	}
	req, ok := RequisitoPara(proximo)
	if !ok {
		return 1
	}

	pessoal := 1.0
	if req.ReceitaPessoal > 0 {
		pessoal = agg.Pessoal / req.ReceitaPessoal
	}
	grupo := 1.0
	if req.ReceitaGrupo > 0 {
		grupo = agg.Grupo / req.ReceitaGrupo
	}

	p := pessoal
	if grupo < p {
		p = grupo
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// CalcularMetricas é o cálculo completo do painel para um usuário: resolve a
// equipe, agrega a receita do mês, avalia promoção e computa as comissões já
// com o nível pós-promoção. Função pura: a persistência do novo nível (campo
// PromovidoPara) fica a cargo do chamador.
func CalcularMetricas(usuarioID uint, usuarios []usuario.Usuario, contratos []contrato.Contrato, referencia time.Time) MetricasDashboard {
	var alvo *usuario.Usuario
	for i := range usuarios {
		if usuarios[i].ID == usuarioID {
			alvo = &usuarios[i]
			break
		}
	}
	if alvo == nil {
		return MetricasZeradas(usuarioID)
	}

	// Admin e master enxergam a base aprovada inteira como "equipe".
	var equipe map[uint]bool
	if alvo.EhAdmin() {
		equipe = usuario.TodosAprovados(usuarios)
		equipe[alvo.ID] = true
	} else {
		equipe = usuario.ResolverEquipe(alvo.ID, usuarios)
	}

	agg := AgregarReceita(alvo.ID, equipe, contratos, referencia)

	m := MetricasDashboard{
		UsuarioID:      alvo.ID,
		ReceitaPessoal: agg.Pessoal,
		ReceitaEquipe:  agg.Equipe,
		ReceitaGrupo:   agg.Grupo,
		Equipe:         []MembroEquipe{},
	}

	nivel := nivelDe(*alvo)
	if novo, promovido := AvaliarPromocao(*alvo, agg, usuarios); promovido {
		nivel = novo
		m.PromovidoPara = novo
	}
	m.NivelAtual = nivel
	if proximo, ok := ProximoNivel(nivel); ok {
		m.ProximoNivel = proximo
	}
	m.ProgressoProximoNivel = Progresso(nivel, agg)

	taxaLider := Taxa(nivel)
	m.ComissaoPessoal = agg.Pessoal * taxaLider

	indice := make(map[uint]usuario.Usuario, len(usuarios))
	for _, u := range usuarios {
		indice[u.ID] = u
	}

	// Ordenação por ID deixa a lista de membros estável entre execuções.
	ids := make([]uint, 0, len(agg.PorMembro))
	for id := range agg.PorMembro {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		membro := indice[id]
		receita := agg.PorMembro[id]
		diferenca := taxaLider - Taxa(nivelDe(membro))
		if diferenca < 0 {
			diferenca = 0
		}
		repasse := receita * diferenca
		m.ComissaoEquipe += repasse
		m.Equipe = append(m.Equipe, MembroEquipe{
			ID:       membro.ID,
			Nome:     membro.Nome,
			Nivel:    nivelDe(membro),
			Receita:  receita,
			Comissao: repasse,
		})
	}

	m.ComissaoTotal = m.ComissaoPessoal + m.ComissaoEquipe
	return m
}
