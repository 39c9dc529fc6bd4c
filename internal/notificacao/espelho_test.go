package notificacao

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnviarAsyncRegistraSucesso(t *testing.T) {
	recebidos := make(chan envelopeEspelho, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env envelopeEspelho
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		recebidos <- env
	}))
	defer srv.Close()

	e := NewEspelho(srv.URL)
	e.EnviarAsync("usuarios", "create", map[string]any{"id": 1})

	select {
	case env := <-recebidos:
		require.Equal(t, "usuarios", env.Entidade)
		require.Equal(t, "create", env.Acao)
	case <-time.After(2 * time.Second):
		t.Fatal("espelho não recebeu o envio")
	}

	require.Eventually(t, func() bool {
		estados := e.Estados()
		return len(estados) == 1 && estados[0].UltimoSucesso != nil && estados[0].Falhas == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEnviarAsyncRegistraFalhaSemBloquear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewEspelho(srv.URL)
	e.EnviarAsync("contratos", "update", map[string]any{"id": 2})

	require.Eventually(t, func() bool {
		estados := e.Estados()
		return len(estados) == 1 && estados[0].Falhas == 1 && estados[0].UltimoErro != ""
	}, 2*time.Second, 10*time.Millisecond)
	require.Nil(t, e.Estados()[0].UltimoSucesso)
}

func TestEnviarAsyncSemURLEhNoOp(t *testing.T) {
	e := NewEspelho("")
	e.EnviarAsync("usuarios", "create", nil)
	require.Empty(t, e.Estados())

	// Espelho nulo também não pode quebrar o chamador
	var nulo *Espelho
	nulo.EnviarAsync("usuarios", "create", nil)
}
