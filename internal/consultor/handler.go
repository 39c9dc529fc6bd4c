package consultor

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

// Criar trata POST /consultores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var c Consultor
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if c.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	c.CriadoPor = auth.UserIDDe(r)

	if err := h.Repo.Criar(h.DB, &c); err != nil {
		http.Error(w, "erro ao salvar consultor", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("consultores", "create", c)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /consultores com visibilidade por subárvore.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	papel := auth.PapelDe(r)
	userID := auth.UserIDDe(r)

	w.Header().Set("Content-Type", "application/json")

	if papel == usuario.PapelAdmin || papel == usuario.PapelMaster {
		consultores, err := h.Repo.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar consultores", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(consultores)
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

	consultores, err := h.Repo.ListarPorUsuarios(h.DB, ids)
	if err != nil {
		http.Error(w, "erro ao listar consultores", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(consultores)
}

// BuscarPorID trata GET /consultores/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Atualizar trata PUT /consultores/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}

	var dados Consultor
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	existente.Nome = dados.Nome
	existente.Sobrenome = dados.Sobrenome
	existente.Email = dados.Email
	existente.Telefone = dados.Telefone
	existente.Senioridade = dados.Senioridade
	existente.ClienteID = dados.ClienteID
	existente.AtribuidoA = dados.AtribuidoA

	if err := h.Repo.Salvar(h.DB, existente); err != nil {
		http.Error(w, "erro ao atualizar consultor", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("consultores", "update", existente)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /consultores/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir consultor", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("consultores", "delete", map[string]any{"id": id})

	w.WriteHeader(http.StatusNoContent)
}
