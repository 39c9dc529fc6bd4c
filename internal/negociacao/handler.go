package negociacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/auth"
	"github.com/VendaSys/api-vendas/internal/notificacao"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

type Handler struct {
	DB       *gorm.DB
	Repo     Repository
	Usuarios usuario.Repository
	Espelho  *notificacao.Espelho
}

func NewHandler(db *gorm.DB, espelho *notificacao.Espelho) *Handler {
	return &Handler{
		DB:       db,
		Repo:     NewRepository(),
		Usuarios: usuario.NewRepository(),
		Espelho:  espelho,
	}
}

// Criar trata POST /negociacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var n Negociacao
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if n.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	if n.Estagio == "" {
		n.Estagio = EstagioProspeccao
	}
	n.CriadoPor = auth.UserIDDe(r)

	if err := h.Repo.Criar(h.DB, &n); err != nil {
		http.Error(w, "erro ao salvar negociação", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("negociacoes", "create", n)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

// Listar trata GET /negociacoes com visibilidade por subárvore.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	papel := auth.PapelDe(r)
	userID := auth.UserIDDe(r)

	w.Header().Set("Content-Type", "application/json")

	if papel == usuario.PapelAdmin || papel == usuario.PapelMaster {
		negociacoes, err := h.Repo.ListarTodas(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar negociações", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(negociacoes)
		return
	}

	usuarios, err := h.Usuarios.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao resolver equipe", http.StatusInternalServerError)
		return
	}
	equipe := usuario.ResolverEquipe(userID, usuarios)
	ids := make([]uint, 0, len(equipe))
	for id := range equipe {
		ids = append(ids, id)
	}

	negociacoes, err := h.Repo.ListarPorUsuarios(h.DB, ids)
	if err != nil {
		http.Error(w, "erro ao listar negociações", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(negociacoes)
}

// BuscarPorID trata GET /negociacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	n, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "negociação não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// Atualizar trata PUT /negociacoes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "negociação não encontrada", http.StatusNotFound)
		return
	}

	var dados Negociacao
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	existente.Nome = dados.Nome
	existente.ClienteID = dados.ClienteID
	existente.Valor = dados.Valor
	existente.AtribuidoA = dados.AtribuidoA
	if dados.Estagio != "" {
		existente.Estagio = dados.Estagio
	}

	if err := h.Repo.Salvar(h.DB, existente); err != nil {
		http.Error(w, "erro ao atualizar negociação", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("negociacoes", "update", existente)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /negociacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir negociação", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("negociacoes", "delete", map[string]any{"id": id})

	w.WriteHeader(http.StatusNoContent)
}
