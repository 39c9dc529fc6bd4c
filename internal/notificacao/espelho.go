package notificacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EstadoSincronizacao resume o espelhamento de uma entidade para o backend
// remoto: informativo, nunca bloqueante.
type EstadoSincronizacao struct {
	Entidade        string     `json:"entidade"`
	UltimaTentativa *time.Time `json:"ultimaTentativa,omitempty"`
	UltimoSucesso   *time.Time `json:"ultimoSucesso,omitempty"`
	Falhas          int        `json:"falhas"`
	UltimoErro      string     `json:"ultimoErro,omitempty"`
}

// Espelho replica mutações locais para um backend remoto em melhor esforço:
// cada envio é assíncrono, independentemente falível e jamais bloqueia o
// fluxo local-first. Não há fila durável nem retry — o estado por entidade
// registra o que ficou para trás.
type Espelho struct {
	URL     string
	Cliente *http.Client

	mu      sync.Mutex
	estados map[string]*EstadoSincronizacao
}

func NewEspelho(url string) *Espelho {
	return &Espelho{
		URL:     url,
		Cliente: &http.Client{Timeout: 5 * time.Second},
		estados: map[string]*EstadoSincronizacao{},
	}
}

type envelopeEspelho struct {
	Entidade  string      `json:"entidade"`
	Acao      string      `json:"acao"`
	Dados     interface{} `json:"dados"`
	EnviadoEm time.Time   `json:"enviadoEm"`
}

// EnviarAsync replica uma mutação em goroutine própria. Seguro chamar com
// Espelho nulo ou sem URL configurada (vira no-op).
func (e *Espelho) EnviarAsync(entidade, acao string, dados interface{}) {
	if e == nil || e.URL == "" {
		return
	}

	body, err := json.Marshal(envelopeEspelho{
		Entidade:  entidade,
		Acao:      acao,
		Dados:     dados,
		EnviadoEm: time.Now(),
	})
	if err != nil {
		logrus.WithError(err).WithField("entidade", entidade).Warn("espelho: payload não serializável")
		return
	}

	go func() {
		err := e.enviar(body)
		e.registrar(entidade, err)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"entidade": entidade,
				"acao":     acao,
			}).Warn("espelho: envio falhou, seguindo apenas local")
		}
	}()
}

func (e *Espelho) enviar(body []byte) error {
	resp, err := e.Cliente.Post(e.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &erroHTTP{Status: resp.StatusCode}
	}
	return nil
}

type erroHTTP struct{ Status int }

func (e *erroHTTP) Error() string { return http.StatusText(e.Status) }

func (e *Espelho) registrar(entidade string, errEnvio error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	est, ok := e.estados[entidade]
	if !ok {
		est = &EstadoSincronizacao{Entidade: entidade}
		e.estados[entidade] = est
	}
	now := time.Now()
	est.UltimaTentativa = &now
	if errEnvio != nil {
		est.Falhas++
		est.UltimoErro = errEnvio.Error()
		return
	}
	est.UltimoSucesso = &now
	est.UltimoErro = ""
}

// Estados devolve uma cópia do estado de sincronização por entidade.
func (e *Espelho) Estados() []EstadoSincronizacao {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]EstadoSincronizacao, 0, len(e.estados))
	for _, est := range e.estados {
		out = append(out, *est)
	}
	return out
}

// StatusHTTPHandler trata GET /sincronizacao com o estado por entidade.
func (e *Espelho) StatusHTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"remoto":    e != nil && e.URL != "",
			"entidades": e.Estados(),
		})
	}
}
