package usuario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/auth"
	"github.com/VendaSys/api-vendas/internal/cache"
	"github.com/VendaSys/api-vendas/internal/notificacao"
	"github.com/VendaSys/api-vendas/internal/utils"
)

var validate = validator.New()

// ContadorDeContratos é o que este pacote precisa saber sobre contratos:
// quantos referenciam um usuário. Satisfeito por contrato.Repository.
type ContadorDeContratos interface {
	ContarPorParticipante(db *gorm.DB, usuarioID uint) (int64, error)
}

// Handler encapsula DB, repository e colaboradores de efeito colateral.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Contratos  ContadorDeContratos
	Espelho    *notificacao.Espelho
	Cache      *cache.Cache
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, espelho *notificacao.Espelho, c *cache.Cache, contratos ContadorDeContratos) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Contratos:  contratos,
		Espelho:    espelho,
		Cache:      c,
	}
}

// Login valida email/senha, emite access token RS256 e seta refresh em cookie httpOnly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	if user.Status == StatusRejeitado {
		http.Error(w, "cadastro rejeitado", http.StatusForbidden)
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, user.ID, user.Papel)
	if err != nil {
		logrus.WithError(err).Error("erro ao gerar tokens")
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": access,
		"token_type":   "Bearer",
		"expires_in":   int(auth.AccessTTL.Seconds()),
	})
}

// Criar cadastra novo usuário (rota pública; entra Pendente, nível junior).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CreateUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "campos obrigatórios ausentes ou inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		// e-mail já cadastrado: erro de validação + alerta assíncrono
		notificacao.EnviarAlertaDuplicado(req.Email)
		http.Error(w, "e-mail já cadastrado", http.StatusConflict)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		Email:     req.Email,
		Telefone:  req.Telefone,
		Foto:      req.Foto,
		Senha:     hash,
		Papel:     PapelComercial,
		Status:    StatusPendente,
		Nivel:     NivelJunior,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	h.Espelho.EnviarAsync("usuarios", "create", u)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Listar retorna a base inteira para admin/master; comercial vê a própria subárvore.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDe(r)
	papel := auth.PapelDe(r)

	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if papel == PapelAdmin || papel == PapelMaster {
		_ = json.NewEncoder(w).Encode(usuarios)
		return
	}

	equipe := ResolverEquipe(userID, usuarios)
	visiveis := make([]Usuario, 0, len(equipe))
	for _, u := range usuarios {
		if equipe[u.ID] {
			visiveis = append(visiveis, u)
		}
	}
	_ = json.NewEncoder(w).Encode(visiveis)
}

// BuscarPorID retorna um usuário pelo ID (admin, o próprio, ou líder na cadeia).
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDe(r)
	papel := auth.PapelDe(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if papel == PapelComercial && uint(id) != userID {
		usuarios, err := h.Repository.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao buscar usuários", http.StatusInternalServerError)
			return
		}
		if !ResolverEquipe(userID, usuarios)[uint(id)] {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}

// Atualizar altera dados cadastrais de um usuário existente.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDe(r)
	papel := auth.PapelDe(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if papel == PapelComercial && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados UpdateUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("usuarios", "update", map[string]any{"id": id, "dados": dados})

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("usuário atualizado com sucesso"))
}

// Aprovar muda o cadastro para Aprovado e define líder/admin responsáveis.
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req AprovarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	if req.LiderID != nil {
		lider, err := h.Repository.BuscarPorID(h.DB, *req.LiderID)
		if err != nil {
			http.Error(w, "líder não encontrado", http.StatusUnprocessableEntity)
			return
		}
		if lider.Papel != PapelComercial || !lider.Aprovado() {
			http.Error(w, "líder precisa ser um comercial aprovado", http.StatusUnprocessableEntity)
			return
		}
		usuarios, err := h.Repository.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao validar liderança", http.StatusInternalServerError)
			return
		}
		if CriaCicloDeLideranca(usuarios, obj.ID, *req.LiderID) {
			http.Error(w, "atribuição de líder criaria um ciclo na hierarquia", http.StatusUnprocessableEntity)
			return
		}
	}

	obj.MarcarAprovado(req.LiderID, req.AdminID)
	if err := h.Repository.AtualizarStatus(h.DB, obj); err != nil {
		http.Error(w, "erro ao aprovar usuário", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("usuarios", "approve", obj)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}

// Rejeitar marca o cadastro como Rejeitado.
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	obj.Status = StatusRejeitado
	if err := h.Repository.AtualizarStatus(h.DB, obj); err != nil {
		http.Error(w, "erro ao rejeitar usuário", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("usuarios", "reject", obj)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}

// Deletar remove um usuário; recusa enquanto houver contratos ou liderados.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	refs, err := h.Contratos.ContarPorParticipante(h.DB, uint(id))
	if err != nil {
		http.Error(w, "erro ao verificar contratos", http.StatusInternalServerError)
		return
	}
	if refs > 0 {
		http.Error(w, "usuário possui contratos vinculados", http.StatusConflict)
		return
	}

	liderados, err := h.Repository.ContarLiderados(h.DB, uint(id))
	if err != nil {
		http.Error(w, "erro ao verificar liderados", http.StatusInternalServerError)
		return
	}
	if liderados > 0 {
		http.Error(w, "usuário possui liderados na hierarquia", http.StatusConflict)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao excluir usuário", http.StatusInternalServerError)
		return
	}

	h.Cache.InvalidarMetricas(r.Context())
	h.Espelho.EnviarAsync("usuarios", "delete", map[string]any{"id": id})

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("usuário excluído com sucesso"))
}

// ResetarSenha gera uma senha temporária para o usuário e a devolve ao admin.
func (h *Handler) ResetarSenha(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	temporaria, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(temporaria)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	obj.Senha = hash
	if err := h.Repository.Salvar(h.DB, obj); err != nil {
		http.Error(w, "erro ao salvar senha", http.StatusInternalServerError)
		return
	}

	logrus.WithField("usuarioId", obj.ID).Info("senha temporária gerada")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"senhaTemporaria": temporaria})
}

// Me retorna o usuário logado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDe(r)

	obj, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}
