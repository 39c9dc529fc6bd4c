package contrato

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/auth"
	"github.com/VendaSys/api-vendas/internal/cache"
	"github.com/VendaSys/api-vendas/internal/notificacao"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

var validate = validator.New()

// Handler gerencia rotas de contrato. Criação/edição/exclusão ficam atrás de
// RequirePapeis(admin, master) no router.
type Handler struct {
	DB       *gorm.DB
	Repo     Repository
	Usuarios usuario.Repository
	Espelho  *notificacao.Espelho
	Cache    *cache.Cache
}

func NewHandler(db *gorm.DB, espelho *notificacao.Espelho, c *cache.Cache) *Handler {
	return &Handler{
		DB:       db,
		Repo:     NewRepository(),
		Usuarios: usuario.NewRepository(),
		Espelho:  espelho,
		Cache:    c,
	}
}

// Criar trata POST /contratos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CreateContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "campos obrigatórios ausentes ou inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	data, err := time.Parse(time.RFC3339, req.Data)
	if err != nil {
		http.Error(w, "data inválida (use RFC3339)", http.StatusBadRequest)
		return
	}

	if _, err := h.Usuarios.BuscarPorID(h.DB, req.DesenvolvedorID); err != nil {
		http.Error(w, "desenvolvedor não encontrado", http.StatusUnprocessableEntity)
		return
	}
	if req.RecrutadorID != nil {
		if _, err := h.Usuarios.BuscarPorID(h.DB, *req.RecrutadorID); err != nil {
			http.Error(w, "recrutador não encontrado", http.StatusUnprocessableEntity)
			return
		}
	}

	c := Contrato{
		Nome:            req.Nome,
		Data:            data,
		MargemBruta:     req.MargemBruta,
		MargemMensal:    req.MargemMensal,
		DuracaoMeses:    req.DuracaoMeses,
		DesenvolvedorID: req.DesenvolvedorID,
		RecrutadorID:    req.RecrutadorID,
		CriadoPor:       auth.UserIDDe(r),
	}

	if err := h.Repo.Criar(h.DB, &c); err != nil {
		http.Error(w, "erro ao criar contrato", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("contratos", "create", c)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /contratos. Admin/master veem tudo; comercial vê os
// contratos em que alguém da sua subárvore participa.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	papel := auth.PapelDe(r)
	userID := auth.UserIDDe(r)

	w.Header().Set("Content-Type", "application/json")

	if papel == usuario.PapelAdmin || papel == usuario.PapelMaster {
		contratos, err := h.Repo.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar contratos", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(contratos)
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

	contratos, err := h.Repo.ListarPorParticipantes(h.DB, ids)
	if err != nil {
		http.Error(w, "erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(contratos)
}

// BuscarPorID trata GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contrato não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Atualizar trata PUT /contratos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contrato não encontrado", http.StatusNotFound)
		return
	}

	var req UpdateContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if req.Nome != nil {
		c.Nome = *req.Nome
	}
	if req.Data != nil {
		data, err := time.Parse(time.RFC3339, *req.Data)
		if err != nil {
			http.Error(w, "data inválida (use RFC3339)", http.StatusBadRequest)
			return
		}
		c.Data = data
	}
	if req.MargemBruta != nil {
		c.MargemBruta = *req.MargemBruta
	}
	if req.MargemMensal != nil {
		c.MargemMensal = *req.MargemMensal
	}
	if req.DuracaoMeses != nil {
		if *req.DuracaoMeses < 1 {
			http.Error(w, "duração mínima é 1 mês", http.StatusBadRequest)
			return
		}
		c.DuracaoMeses = *req.DuracaoMeses
	}
	if req.DesenvolvedorID != nil {
		c.DesenvolvedorID = *req.DesenvolvedorID
	}
	if req.RecrutadorID != nil {
		c.RecrutadorID = req.RecrutadorID
	}

	if err := h.Repo.Salvar(h.DB, c); err != nil {
		http.Error(w, "erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("contratos", "update", c)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Deletar trata DELETE /contratos/{id}; independe do ciclo de vida do usuário.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.BuscarPorID(h.DB, uint(id)); err != nil {
		http.Error(w, "contrato não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repo.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao deletar contrato", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("contratos", "delete", map[string]any{"id": id})

	w.WriteHeader(http.StatusNoContent)
}
