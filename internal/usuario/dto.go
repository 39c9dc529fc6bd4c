package usuario

// LoginRequest é usado em POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUsuarioRequest é usado em POST /usuarios (cadastro público, entra Pendente)
type CreateUsuarioRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email" validate:"required,email"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"senha" validate:"required,min=8"`
}

// UpdateUsuarioRequest é usado em PUT /usuarios/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type UpdateUsuarioRequest struct {
	Nome      *string `json:"nome,omitempty"`
	Sobrenome *string `json:"sobrenome,omitempty"`
	Telefone  *string `json:"telefone,omitempty"`
	Foto      *string `json:"foto,omitempty"`
}

// AprovarUsuarioRequest é usado em POST /usuarios/{id}/aprovar
// Admin define o líder direto (opcional) e o admin responsável.
type AprovarUsuarioRequest struct {
	LiderID *uint `json:"liderId,omitempty"`
	AdminID *uint `json:"adminId,omitempty"`
}
