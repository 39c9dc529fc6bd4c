package comentario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/auth"
)

// Handler gerencia comentários de negociações.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Criar trata POST /negociacoes/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	negID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de negociação inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Texto string `json:"texto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Texto == "" {
		http.Error(w, "texto é obrigatório", http.StatusBadRequest)
		return
	}

	autor := auth.UserIDDe(r)
	c := Comentario{
		Texto:        payload.Texto,
		NegociacaoID: uint(negID),
		AutorID:      &autor,
	}
	if err := h.Repo.Criar(&c); err != nil {
		http.Error(w, "erro ao criar comentário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// ListarPorNegociacao trata GET /negociacoes/{id}/comentarios
func (h *Handler) ListarPorNegociacao(w http.ResponseWriter, r *http.Request) {
	negID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de negociação inválido", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListarPorNegociacao(uint(negID))
	if err != nil {
		http.Error(w, "erro ao listar comentários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Remover trata DELETE /comentarios/{id} (autor ou admin)
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "comentário não encontrado", http.StatusNotFound)
		return
	}

	papel := auth.PapelDe(r)
	userID := auth.UserIDDe(r)
	ehAutor := c.AutorID != nil && *c.AutorID == userID
	if papel == "comercial" && !ehAutor {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repo.Deletar(c); err != nil {
		http.Error(w, "erro ao remover comentário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
