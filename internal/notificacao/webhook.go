package notificacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// EnviarAlertaDuplicado dispara um webhook avisando que houve tentativa de
// cadastro com e-mail já existente. Melhor esforço: falha só gera log.
func EnviarAlertaDuplicado(email string) {
	url := os.Getenv("ALERT_WEBHOOK_URL")
	if url == "" {
		return
	}

	payload := map[string]string{
		"mensagem": "Alerta: tentativa de cadastro com e-mail já existente",
		"email":    email,
	}
	body, _ := json.Marshal(payload)

	go func() {
		resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
		if err != nil {
			logrus.WithError(err).Warn("erro ao enviar webhook de alerta")
			return
		}
		defer resp.Body.Close()
	}()
}
