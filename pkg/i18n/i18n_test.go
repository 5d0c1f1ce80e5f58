package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LocalizerGet(t *testing.T) {
	l := NewLocalizer("en", "es")

	assert.Equal(t, "Wrong password", l.Get("en", ERROR_AUTH_WRONG_PASSWORD))
	assert.Equal(t, "Contraseña incorrecta", l.Get("es", ERROR_AUTH_WRONG_PASSWORD))

	// unknown language or id falls back to the id itself
	assert.Equal(t, ERROR_INTERNAL, l.Get("fr", ERROR_INTERNAL))
	assert.Equal(t, "error.unknown", l.Get("en", "error.unknown"))
}
