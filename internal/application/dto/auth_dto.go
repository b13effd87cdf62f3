package dto

// LoginRequest credenciales del operador.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras un login correcto.
type LoginResponse struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
}
