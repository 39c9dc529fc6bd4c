package main

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/VendaSys/api-vendas/internal/auth"
	"github.com/VendaSys/api-vendas/internal/cache"
	"github.com/VendaSys/api-vendas/internal/cliente"
	"github.com/VendaSys/api-vendas/internal/comentario"
	"github.com/VendaSys/api-vendas/internal/consultor"
	"github.com/VendaSys/api-vendas/internal/contrato"
	"github.com/VendaSys/api-vendas/internal/dashboard"
	"github.com/VendaSys/api-vendas/internal/negociacao"
	"github.com/VendaSys/api-vendas/internal/notificacao"
	"github.com/VendaSys/api-vendas/internal/usuario"
	"github.com/VendaSys/api-vendas/internal/utils"
	"github.com/VendaSys/api-vendas/internal/utils/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("arquivo .env não encontrado, usando variáveis de ambiente")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})

	conn, err := db.GetDB()
	if err != nil {
		logrus.WithError(err).Fatal("erro ao conectar no banco")
	}

	if err := conn.AutoMigrate(
		&usuario.Usuario{},
		&contrato.Contrato{},
		&cliente.Cliente{},
		&consultor.Consultor{},
		&negociacao.Negociacao{},
		&comentario.Comentario{},
		&auth.RefreshToken{},
	); err != nil {
		logrus.WithError(err).Fatal("erro no AutoMigrate")
	}

	// Cache de métricas é opcional: sem Redis o dashboard apenas recomputa.
	var metricas *cache.Cache
	redisHost := utils.GetEnv("REDIS_HOST", "")
	if redisHost != "" {
		redisDB, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))
		rdb, err := cache.NewRedisClient(redisHost, utils.GetEnv("REDIS_PORT", "6379"), utils.GetEnv("REDIS_PASSWORD", ""), redisDB)
		if err != nil {
			logrus.WithError(err).Warn("redis indisponível, cache de métricas desligado")
		} else {
			metricas = cache.New(rdb)
		}
	}

	// Espelho remoto best-effort; URL vazia desliga o envio.
	espelho := notificacao.NewEspelho(utils.GetEnv("MIRROR_URL", ""))

	// Handlers
	usuarioHandler := usuario.NewHandler(conn, espelho, metricas, contrato.NewRepository())
	contratoHandler := contrato.NewHandler(conn, espelho, metricas)
	clienteHandler := cliente.NewHandler(conn, espelho)
	consultorHandler := consultor.NewHandler(conn, espelho)
	negociacaoHandler := negociacao.NewHandler(conn, espelho)
	comentarioHandler := comentario.NewHandler(conn)
	dashboardHandler := dashboard.NewHandler(conn, espelho, metricas)

	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(conn)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(conn)).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	admin := auth.RequirePapeis(usuario.PapelAdmin, usuario.PapelMaster)

	// Usuários
	api.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	api.Handle("/usuarios/{id}/aprovar", admin(http.HandlerFunc(usuarioHandler.Aprovar))).Methods("POST")
	api.Handle("/usuarios/{id}/rejeitar", admin(http.HandlerFunc(usuarioHandler.Rejeitar))).Methods("POST")
	api.Handle("/usuarios/{id}/resetar-senha", admin(http.HandlerFunc(usuarioHandler.ResetarSenha))).Methods("POST")
	api.Handle("/usuarios/{id}", admin(http.HandlerFunc(usuarioHandler.Deletar))).Methods("DELETE")

	// Contratos (mutações restritas ao back-office)
	api.HandleFunc("/contratos", contratoHandler.Listar).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")
	api.Handle("/contratos", admin(http.HandlerFunc(contratoHandler.Criar))).Methods("POST")
	api.Handle("/contratos/{id}", admin(http.HandlerFunc(contratoHandler.Atualizar))).Methods("PUT")
	api.Handle("/contratos/{id}", admin(http.HandlerFunc(contratoHandler.Deletar))).Methods("DELETE")

	// Clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods("DELETE")

	// Consultores
	api.HandleFunc("/consultores", consultorHandler.Criar).Methods("POST")
	api.HandleFunc("/consultores", consultorHandler.Listar).Methods("GET")
	api.HandleFunc("/consultores/{id}", consultorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/consultores/{id}", consultorHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/consultores/{id}", consultorHandler.Deletar).Methods("DELETE")

	// Negociações e comentários
	api.HandleFunc("/negociacoes", negociacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/negociacoes", negociacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/negociacoes/{id}/comentarios", comentarioHandler.Criar).Methods("POST")
	api.HandleFunc("/negociacoes/{id}/comentarios", comentarioHandler.ListarPorNegociacao).Methods("GET")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Remover).Methods("DELETE")

	// Dashboard de comissões
	api.HandleFunc("/dashboard", dashboardHandler.Minhas).Methods("GET")
	api.HandleFunc("/dashboard/{id}", dashboardHandler.PorID).Methods("GET")

	// Status da sincronização com o espelho remoto
	api.Handle("/sincronizacao", admin(espelho.StatusHTTPHandler())).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{utils.GetEnv("CORS_ORIGIN", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := utils.GetEnv("PORT", "8080")
	logrus.WithField("porta", porta).Info("servidor iniciado")
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		logrus.WithError(err).Fatal("servidor encerrado")
	}
}
