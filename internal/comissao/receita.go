package comissao

import (
	"time"

	"github.com/VendaSys/api-vendas/internal/contrato"
)

// ReceitaAgregada é o resultado da agregação mensal de receita para um usuário
// e sua subárvore.
type ReceitaAgregada struct {
	// Pessoal: soma das fatias do próprio usuário nos contratos ativos.
	Pessoal float64
	// Equipe: soma das fatias dos liderados (sem o próprio usuário).
	Equipe float64
	// Grupo: Pessoal + Equipe.
	Grupo float64
	// PorMembro guarda a receita pessoal de cada liderado, para o cálculo
	// do repasse do líder.
	PorMembro map[uint]float64
}

// ContratoAtivoNoMes diz se o contrato está vigente em algum dia do mês de
// referencia: começou antes do mês virar e ainda não terminou quando o mês
// de referência começa.
func ContratoAtivoNoMes(c contrato.Contrato, referencia time.Time) bool {
	inicioMes := time.Date(referencia.Year(), referencia.Month(), 1, 0, 0, 0, 0, referencia.Location())
	inicioProximoMes := inicioMes.AddDate(0, 1, 0)
	fim := c.Data.AddDate(0, c.DuracaoMeses, 0)
	return c.Data.Before(inicioProximoMes) && fim.After(inicioMes)
}

// ReceitaMensalDoUsuario soma a fatia do usuário nos contratos ativos no mês.
// Contratos com desenvolvedor e recrutador pagam 50% para cada; quando o
// mesmo usuário ocupa os dois papéis, conta uma única fatia de 50%.
func ReceitaMensalDoUsuario(usuarioID uint, contratos []contrato.Contrato, referencia time.Time) float64 {
	var total float64
	for _, c := range contratos {
		if !c.Participa(usuarioID) || !ContratoAtivoNoMes(c, referencia) {
			continue
		}
		margem := c.MargemMensalEfetiva()
		if c.DoisParticipantes() {
			margem *= 0.5
		}
		total += margem
	}
	return total
}

// AgregarReceita calcula as receitas pessoal, de equipe e de grupo do usuário
// sobre o conjunto de membros resolvido do organograma (o próprio usuário
// incluso).
func AgregarReceita(usuarioID uint, equipe map[uint]bool, contratos []contrato.Contrato, referencia time.Time) ReceitaAgregada {
	agg := ReceitaAgregada{PorMembro: make(map[uint]float64)}
	for id := range equipe {
		receita := ReceitaMensalDoUsuario(id, contratos, referencia)
		if id == usuarioID {
			agg.Pessoal = receita
			continue
		}
		agg.PorMembro[id] = receita
		agg.Equipe += receita
	}
	agg.Grupo = agg.Pessoal + agg.Equipe
	return agg
}
