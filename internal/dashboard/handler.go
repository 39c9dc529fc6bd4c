package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VendaSys/api-vendas/internal/auth"
	"github.com/VendaSys/api-vendas/internal/cache"
	"github.com/VendaSys/api-vendas/internal/comissao"
	"github.com/VendaSys/api-vendas/internal/contrato"
	"github.com/VendaSys/api-vendas/internal/notificacao"
	"github.com/VendaSys/api-vendas/internal/usuario"
)

// Handler serve as métricas mensais de comissão e carreira.
type Handler struct {
	DB        *gorm.DB
	Usuarios  usuario.Repository
	Contratos contrato.Repository
	Espelho   *notificacao.Espelho
	Cache     *cache.Cache

	// Agora permite congelar o relógio nos testes.
	Agora func() time.Time
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, espelho *notificacao.Espelho, c *cache.Cache) *Handler {
	return &Handler{
		DB:        db,
		Usuarios:  usuario.NewRepository(),
		Contratos: contrato.NewRepository(),
		Espelho:   espelho,
		Cache:     c,
		Agora:     time.Now,
	}
}

// Minhas responde GET /dashboard com as métricas do usuário logado.
func (h *Handler) Minhas(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, auth.UserIDDe(r))
}

// PorID responde GET /dashboard/{id}: admin vê qualquer um; comercial vê a si
// mesmo ou alguém da própria subárvore.
func (h *Handler) PorID(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDe(r)
	papel := auth.PapelDe(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if papel == usuario.PapelComercial && uint(id) != userID {
		usuarios, err := h.Usuarios.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao buscar usuários", http.StatusInternalServerError)
			return
		}
		if !usuario.ResolverEquipe(userID, usuarios)[uint(id)] {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
	}

	h.responder(w, r, uint(id))
}

func (h *Handler) responder(w http.ResponseWriter, r *http.Request, usuarioID uint) {
	w.Header().Set("Content-Type", "application/json")

	var cached comissao.MetricasDashboard
	if h.Cache.BuscarMetricas(r.Context(), usuarioID, &cached) {
		_ = json.NewEncoder(w).Encode(cached)
		return
	}

	m, err := h.Calcular(r.Context(), usuarioID)
	if err != nil {
		http.Error(w, "erro ao calcular métricas", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(m)
}

// Calcular carrega o snapshot de usuários e contratos, roda o motor de
// comissão e, havendo promoção, persiste o novo nível antes de devolver.
// Usuário inexistente devolve métricas zeradas, nunca erro.
func (h *Handler) Calcular(ctx context.Context, usuarioID uint) (comissao.MetricasDashboard, error) {
	usuarios, err := h.Usuarios.ListarTodos(h.DB)
	if err != nil {
		return comissao.MetricasDashboard{}, err
	}
	contratos, err := h.Contratos.ListarTodos(h.DB)
	if err != nil {
		return comissao.MetricasDashboard{}, err
	}

	encontrado := false
	for _, u := range usuarios {
		if u.ID == usuarioID {
			encontrado = true
			break
		}
	}
	if !encontrado {
		logrus.WithField("usuarioId", usuarioID).Warn("métricas solicitadas para usuário inexistente")
	}

	m := comissao.CalcularMetricas(usuarioID, usuarios, contratos, h.Agora())

	if m.PromovidoPara != "" {
		if err := h.Usuarios.AtualizarNivel(h.DB, usuarioID, m.PromovidoPara); err != nil {
			// promoção não persistida: devolve as métricas mesmo assim,
			// o próximo recálculo tenta de novo
			logrus.WithError(err).WithField("usuarioId", usuarioID).Error("falha ao persistir promoção")
		} else {
			logrus.WithFields(logrus.Fields{
				"usuarioId": usuarioID,
				"nivel":     m.PromovidoPara,
			}).Info("usuário promovido")
			h.Espelho.EnviarAsync("usuarios", "promote", map[string]any{
				"id":    usuarioID,
				"nivel": m.PromovidoPara,
			})
		}
	}

	h.Cache.GuardarMetricas(ctx, usuarioID, m)
	return m, nil
}
