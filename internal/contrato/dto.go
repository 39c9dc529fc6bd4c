package contrato

// CreateContratoRequest é usado em POST /contratos
type CreateContratoRequest struct {
	Nome            string  `json:"nome" validate:"required"`
	Data            string  `json:"data" validate:"required"` // RFC3339
	MargemBruta     float64 `json:"margemBruta" validate:"gte=0"`
	MargemMensal    float64 `json:"margemMensal" validate:"gte=0"`
	DuracaoMeses    int     `json:"duracaoMeses" validate:"required,gte=1"`
	DesenvolvedorID uint    `json:"desenvolvedorId" validate:"required"`
	RecrutadorID    *uint   `json:"recrutadorId,omitempty"`
}

// UpdateContratoRequest é usado em PUT /contratos/{id}
type UpdateContratoRequest struct {
	Nome            *string  `json:"nome,omitempty"`
	Data            *string  `json:"data,omitempty"`
	MargemBruta     *float64 `json:"margemBruta,omitempty"`
	MargemMensal    *float64 `json:"margemMensal,omitempty"`
	DuracaoMeses    *int     `json:"duracaoMeses,omitempty"`
	DesenvolvedorID *uint    `json:"desenvolvedorId,omitempty"`
	RecrutadorID    *uint    `json:"recrutadorId,omitempty"`
}
