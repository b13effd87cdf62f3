// Package auth autentica al operador del sistema. Hay un solo usuario
// operador cuyas credenciales (usuario + hash bcrypt) viven en configuración;
// el motor de asignación no conoce usuarios.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jonacogo/jagi-erp/internal/domain"
	"github.com/jonacogo/jagi-erp/pkg/jwt"
)

// Config credenciales del operador y parámetros del token.
type Config struct {
	Usuario      string
	PasswordHash string // hash bcrypt; vacío deshabilita el login
	JWTSecret    string
	ExpMinutes   int
	Issuer       string
}

// UseCase login del operador.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// Login verifica usuario/password contra la configuración y genera el JWT.
func (uc *UseCase) Login(usuario, password string) (string, error) {
	if uc.cfg.PasswordHash == "" || usuario != uc.cfg.Usuario {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.cfg.JWTSecret, usuario, uc.cfg.Issuer, uc.cfg.ExpMinutes)
}
