package usuario

// ResolverEquipe devolve o conjunto de IDs alcançáveis a partir da raiz
// seguindo as arestas de liderança para baixo (a raiz inclusa, mais todos os
// liderados diretos e indiretos). Apenas usuários aprovados participam da
// travessia; pendentes e rejeitados ficam de fora da equipe.
//
// O índice de filhos é montado a cada chamada e a travessia carrega um
// conjunto de visitados: um ciclo na cadeia de liderança não derruba a
// resolução, apenas deixa de expandir o nó repetido.
func ResolverEquipe(raizID uint, usuarios []Usuario) map[uint]bool {
	filhos := make(map[uint][]uint, len(usuarios))
	for _, u := range usuarios {
		if !u.Aprovado() || u.LiderID == nil {
			continue
		}
		filhos[*u.LiderID] = append(filhos[*u.LiderID], u.ID)
	}

	visitados := map[uint]bool{}
	var caminhar func(id uint)
	caminhar = func(id uint) {
		if visitados[id] {
			return
		}
		visitados[id] = true
		for _, f := range filhos[id] {
			caminhar(f)
		}
	}
	caminhar(raizID)
	return visitados
}

// TodosAprovados devolve o conjunto de IDs de todos os usuários aprovados.
// É a visibilidade de admin/master, que dispensa a resolução por grafo.
func TodosAprovados(usuarios []Usuario) map[uint]bool {
	ids := map[uint]bool{}
	for _, u := range usuarios {
		if u.Aprovado() {
			ids[u.ID] = true
		}
	}
	return ids
}

// CriaCicloDeLideranca verifica se atribuir liderID como líder de usuarioID
// fecharia um ciclo na cadeia de liderança. A checagem sobe pela cadeia do
// candidato a líder; um conjunto de visitados garante término mesmo se os
// dados já estiverem corrompidos.
func CriaCicloDeLideranca(usuarios []Usuario, usuarioID, liderID uint) bool {
	porID := make(map[uint]*Usuario, len(usuarios))
	for i := range usuarios {
		porID[usuarios[i].ID] = &usuarios[i]
	}

	visitados := map[uint]bool{}
	atual := liderID
	for atual != 0 {
		if atual == usuarioID {
			return true
		}
		if visitados[atual] {
			return true // ciclo pré-existente acima do candidato
		}
		visitados[atual] = true
		u, ok := porID[atual]
		if !ok || u.LiderID == nil {
			return false
		}
		atual = *u.LiderID
	}
	return false
}
