package comissao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VendaSys/api-vendas/internal/contrato"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

var referencia = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func aprovado(id uint, nome, nivel string, liderID *uint) usuario.Usuario {
	return usuario.Usuario{
		ID:      id,
		Nome:    nome,
		Papel:   usuario.PapelComercial,
		Status:  usuario.StatusAprovado,
		Nivel:   nivel,
		LiderID: liderID,
	}
}

func contratoMensal(dev uint, rec *uint, margemMensal float64) contrato.Contrato {
	return contrato.Contrato{
		Nome:            "contrato",
		Data:            referencia.AddDate(0, 0, -10),
		MargemMensal:    margemMensal,
		DuracaoMeses:    12,
		DesenvolvedorID: dev,
		RecrutadorID:    rec,
	}
}

func TestResolverEquipeCadeia(t *testing.T) {
	// A <- B <- C, mais um D pendente pendurado em C
	usuarios := []usuario.Usuario{
		aprovado(1, "A", usuario.NivelLiderEquipe, nil),
		aprovado(2, "B", usuario.NivelSenior, uintPtr(1)),
		aprovado(3, "C", usuario.NivelJunior, uintPtr(2)),
		{ID: 4, Nome: "D", Papel: usuario.PapelComercial, Status: usuario.StatusPendente, Nivel: usuario.NivelJunior, LiderID: uintPtr(3)},
	}

	equipeA := usuario.ResolverEquipe(1, usuarios)
	require.Equal(t, map[uint]bool{1: true, 2: true, 3: true}, equipeA)

	equipeB := usuario.ResolverEquipe(2, usuarios)
	require.Equal(t, map[uint]bool{2: true, 3: true}, equipeB)

	require.False(t, usuario.ResolverEquipe(3, usuarios)[4], "pendente não entra na equipe")
}

func TestResolverEquipeTerminaComCiclo(t *testing.T) {
	// 1 e 2 apontam um para o outro; a travessia não pode entrar em loop
	usuarios := []usuario.Usuario{
		aprovado(1, "A", usuario.NivelJunior, uintPtr(2)),
		aprovado(2, "B", usuario.NivelJunior, uintPtr(1)),
	}
	equipe := usuario.ResolverEquipe(1, usuarios)
	require.Equal(t, map[uint]bool{1: true, 2: true}, equipe)
}

func TestContratoAtivoNoMes(t *testing.T) {
	// começou há dois meses com duração 3: ainda ativo
	ativo := contrato.Contrato{Data: referencia.AddDate(0, -2, 0), DuracaoMeses: 3}
	require.True(t, ContratoAtivoNoMes(ativo, referencia))

	// mesma data com duração 1: já terminou
	vencido := contrato.Contrato{Data: referencia.AddDate(0, -2, 0), DuracaoMeses: 1}
	require.False(t, ContratoAtivoNoMes(vencido, referencia))

	// começa só no mês que vem: ainda não conta
	futuro := contrato.Contrato{Data: referencia.AddDate(0, 1, 5), DuracaoMeses: 6}
	require.False(t, ContratoAtivoNoMes(futuro, referencia))
}

func TestReceitaContratoDividido(t *testing.T) {
	usuarios := []usuario.Usuario{
		aprovado(1, "X", usuario.NivelJunior, nil),
		aprovado(2, "Y", usuario.NivelJunior, uintPtr(1)),
	}
	contratos := []contrato.Contrato{contratoMensal(1, uintPtr(2), 1000)}

	require.Equal(t, 500.0, ReceitaMensalDoUsuario(1, contratos, referencia))
	require.Equal(t, 500.0, ReceitaMensalDoUsuario(2, contratos, referencia))

	// soma 1000 no grupo, nunca contada em dobro quando Y é liderado de X
	agg := AgregarReceita(1, usuario.ResolverEquipe(1, usuarios), contratos, referencia)
	require.Equal(t, 500.0, agg.Pessoal)
	require.Equal(t, 500.0, agg.Equipe)
	require.Equal(t, 1000.0, agg.Grupo)
}

func TestReceitaMesmoUsuarioNosDoisPapeis(t *testing.T) {
	// desenvolvedor e recrutador iguais: uma única fatia de 50%
	contratos := []contrato.Contrato{contratoMensal(1, uintPtr(1), 1000)}
	require.Equal(t, 500.0, ReceitaMensalDoUsuario(1, contratos, referencia))
}

func TestMargemMensalDerivada(t *testing.T) {
	c := contrato.Contrato{MargemBruta: 12000, DuracaoMeses: 12}
	require.Equal(t, 1000.0, c.MargemMensalEfetiva())

	// duração zero não divide por zero
	c = contrato.Contrato{MargemBruta: 500, DuracaoMeses: 0}
	require.Equal(t, 500.0, c.MargemMensalEfetiva())
}

func TestRepasseNuncaNegativo(t *testing.T) {
	// liderado de nível maior que o líder: repasse zera, não fica negativo
	usuarios := []usuario.Usuario{
		aprovado(1, "Lider", usuario.NivelJunior, nil),
		aprovado(2, "Membro", usuario.NivelSocio, uintPtr(1)),
	}
	contratos := []contrato.Contrato{contratoMensal(2, nil, 5000)}

	m := CalcularMetricas(1, usuarios, contratos, referencia)
	require.Equal(t, 0.0, m.ComissaoEquipe)
	require.Len(t, m.Equipe, 1)
	require.Equal(t, 0.0, m.Equipe[0].Comissao)
}

func TestPromocaoOuVersusE(t *testing.T) {
	// senior exige só receita pessoal (sem OU): 15000 promove
	u := aprovado(1, "A", usuario.NivelJunior, nil)
	novo, ok := AvaliarPromocao(u, ReceitaAgregada{Pessoal: 15000, Grupo: 15000}, nil)
	require.True(t, ok)
	require.Equal(t, usuario.NivelSenior, novo)

	// team_leader com OU: grupo 60000 basta mesmo com pessoal zerado,
	// desde que a condição de membros esteja satisfeita
	lider := aprovado(1, "A", usuario.NivelSenior, nil)
	equipe := []usuario.Usuario{
		lider,
		aprovado(2, "B", usuario.NivelSenior, uintPtr(1)),
		aprovado(3, "C", usuario.NivelSenior, uintPtr(1)),
	}
	novo, ok = AvaliarPromocao(lider, ReceitaAgregada{Pessoal: 0, Grupo: 60000}, equipe)
	require.True(t, ok)
	require.Equal(t, usuario.NivelLiderEquipe, novo)

	// sem os dois seniores diretos a mesma receita não promove
	sozinho := []usuario.Usuario{lider}
	_, ok = AvaliarPromocao(lider, ReceitaAgregada{Pessoal: 0, Grupo: 60000}, sozinho)
	require.False(t, ok)
}

func TestPromocaoCondicaoDeMembrosContaSoDiretos(t *testing.T) {
	// os dois seniores estão abaixo de B, não diretamente abaixo de A
	lider := aprovado(1, "A", usuario.NivelSenior, nil)
	usuarios := []usuario.Usuario{
		lider,
		aprovado(2, "B", usuario.NivelJunior, uintPtr(1)),
		aprovado(3, "C", usuario.NivelSenior, uintPtr(2)),
		aprovado(4, "D", usuario.NivelSenior, uintPtr(2)),
	}
	_, ok := AvaliarPromocao(lider, ReceitaAgregada{Pessoal: 25000, Grupo: 90000}, usuarios)
	require.False(t, ok)
}

func TestPromocaoNuncaRegride(t *testing.T) {
	u := aprovado(1, "Topo", usuario.NivelDiretorGeral, nil)
	_, ok := AvaliarPromocao(u, ReceitaAgregada{}, nil)
	require.False(t, ok, "diretor geral é terminal, com ou sem receita")

	m := CalcularMetricas(1, []usuario.Usuario{u}, nil, referencia)
	require.Equal(t, usuario.NivelDiretorGeral, m.NivelAtual)
	require.Empty(t, m.ProximoNivel)
	require.Equal(t, 1.0, m.ProgressoProximoNivel)
}

func TestProgressoLimitadoEntreZeroEUm(t *testing.T) {
	// junior a caminho de senior: 7500/15000
	p := Progresso(usuario.NivelJunior, ReceitaAgregada{Pessoal: 7500, Grupo: 7500})
	require.InDelta(t, 0.5, p, 1e-9)

	// acima da meta satura em 1
	p = Progresso(usuario.NivelJunior, ReceitaAgregada{Pessoal: 40000, Grupo: 40000})
	require.Equal(t, 1.0, p)

	// senior a caminho de team_leader: a menor das razões limita
	p = Progresso(usuario.NivelSenior, ReceitaAgregada{Pessoal: 20000, Grupo: 25000})
	require.InDelta(t, 0.5, p, 1e-9)
}

func TestCenarioCompletoLiderELiderado(t *testing.T) {
	usuarios := []usuario.Usuario{
		aprovado(1, "A", usuario.NivelLiderEquipe, nil),
		aprovado(2, "B", usuario.NivelJunior, uintPtr(1)),
	}
	contratos := []contrato.Contrato{contratoMensal(2, nil, 2000)}

	b := CalcularMetricas(2, usuarios, contratos, referencia)
	require.Equal(t, 2000.0, b.ReceitaPessoal)
	require.InDelta(t, 100.0, b.ComissaoPessoal, 1e-9)

	a := CalcularMetricas(1, usuarios, contratos, referencia)
	require.Equal(t, 0.0, a.ReceitaPessoal)
	require.Equal(t, 2000.0, a.ReceitaEquipe)
	require.InDelta(t, 200.0, a.ComissaoEquipe, 1e-9)
	require.InDelta(t, 200.0, a.ComissaoTotal, 1e-9)
}

func TestCalcularMetricasIdempotente(t *testing.T) {
	usuarios := []usuario.Usuario{
		aprovado(1, "A", usuario.NivelLiderEquipe, nil),
		aprovado(2, "B", usuario.NivelSenior, uintPtr(1)),
		aprovado(3, "C", usuario.NivelJunior, uintPtr(2)),
	}
	contratos := []contrato.Contrato{
		contratoMensal(1, nil, 3000),
		contratoMensal(2, uintPtr(3), 1000),
	}

	primeira := CalcularMetricas(1, usuarios, contratos, referencia)
	segunda := CalcularMetricas(1, usuarios, contratos, referencia)
	require.Equal(t, primeira, segunda)
}

func TestAdminVeBaseInteira(t *testing.T) {
	usuarios := []usuario.Usuario{
		{ID: 1, Nome: "Root", Papel: usuario.PapelAdmin, Status: usuario.StatusAprovado, Nivel: usuario.NivelJunior},
		aprovado(2, "A", usuario.NivelSenior, nil),
		aprovado(3, "B", usuario.NivelJunior, nil), // sem vínculo com o admin
	}
	contratos := []contrato.Contrato{
		contratoMensal(2, nil, 1000),
		contratoMensal(3, nil, 1000),
	}

	m := CalcularMetricas(1, usuarios, contratos, referencia)
	// admin é cravado no topo e a equipe é a base aprovada inteira
	require.Equal(t, usuario.NivelDiretorGeral, m.NivelAtual)
	require.Empty(t, m.PromovidoPara)
	require.Len(t, m.Equipe, 2)
	require.Equal(t, 2000.0, m.ReceitaEquipe)
	// repasse de 0.30-0.10 sobre A e 0.30-0.05 sobre B
	require.InDelta(t, 1000*0.20+1000*0.25, m.ComissaoEquipe, 1e-9)
}

func TestUsuarioInexistenteDevolveZeros(t *testing.T) {
	m := CalcularMetricas(99, nil, nil, referencia)
	require.Equal(t, uint(99), m.UsuarioID)
	require.Equal(t, 0.0, m.ReceitaPessoal)
	require.Equal(t, 0.0, m.ComissaoTotal)
	require.Empty(t, m.Equipe)
}

func TestPromocaoRefleteNaComissaoDoMesmoPasso(t *testing.T) {
	// junior com 15000 pessoais: sobe para senior e a comissão já sai a 10%
	usuarios := []usuario.Usuario{aprovado(1, "A", usuario.NivelJunior, nil)}
	contratos := []contrato.Contrato{contratoMensal(1, nil, 15000)}

	m := CalcularMetricas(1, usuarios, contratos, referencia)
	require.Equal(t, usuario.NivelSenior, m.PromovidoPara)
	require.Equal(t, usuario.NivelSenior, m.NivelAtual)
	require.InDelta(t, 1500.0, m.ComissaoPessoal, 1e-9)
}

func TestEscadaOrdenadaETaxasCrescentes(t *testing.T) {
	for i := 1; i < len(Escada); i++ {
		require.Greater(t, Taxa(Escada[i]), Taxa(Escada[i-1]))
		require.Equal(t, i, Ordem(Escada[i]))
	}
	require.Equal(t, 0.0, Taxa("desconhecido"))
	require.Equal(t, -1, Ordem("desconhecido"))
}
