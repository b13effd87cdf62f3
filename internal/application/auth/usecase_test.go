package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonacogo/jagi-erp/internal/application/auth"
	"github.com/jonacogo/jagi-erp/internal/domain"
	pkgjwt "github.com/jonacogo/jagi-erp/pkg/jwt"
)

func configDePrueba(t *testing.T, password string) auth.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.Config{
		Usuario:      "operador",
		PasswordHash: string(hash),
		JWTSecret:    "secret-de-test",
		ExpMinutes:   60,
		Issuer:       "jagi-erp-test",
	}
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc := auth.NewUseCase(configDePrueba(t, "clave123"))

	tok, err := uc.Login("operador", "clave123")
	require.NoError(t, err)

	usuario, err := pkgjwt.Parse("secret-de-test", tok)
	require.NoError(t, err)
	assert.Equal(t, "operador", usuario, "el token lleva al operador autenticado")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewUseCase(configDePrueba(t, "clave123"))

	_, err := uc.Login("operador", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDesconocido(t *testing.T) {
	uc := auth.NewUseCase(configDePrueba(t, "clave123"))

	_, err := uc.Login("intruso", "clave123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Sin hash configurado el login queda deshabilitado por completo.
func TestLogin_SinHashConfigurado(t *testing.T) {
	cfg := configDePrueba(t, "clave123")
	cfg.PasswordHash = ""
	uc := auth.NewUseCase(cfg)

	_, err := uc.Login("operador", "clave123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
