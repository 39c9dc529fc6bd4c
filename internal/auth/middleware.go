package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxPapel  ctxKey = "papel"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePapeis bloqueia a rota para quem não tiver um dos papéis listados.
func RequirePapeis(papeis ...string) func(http.Handler) http.Handler {
	permitidos := map[string]bool{}
	for _, p := range papeis {
		permitidos[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			papel, _ := r.Context().Value(CtxPapel).(string)
			if !permitidos[papel] {
				http.Error(w, "acesso negado", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PapelDe extrai o papel do contexto da requisição.
func PapelDe(r *http.Request) string {
	p, _ := r.Context().Value(CtxPapel).(string)
	return p
}

// UserIDDe extrai o ID do usuário autenticado do contexto da requisição.
func UserIDDe(r *http.Request) uint {
	id, _ := r.Context().Value(CtxUserID).(uint)
	return id
}
