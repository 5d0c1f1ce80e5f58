package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenUserPassword(t *testing.T) {
	a := GenUserPassword("salt1", "secret")
	b := GenUserPassword("salt1", "secret")
	c := GenUserPassword("salt2", "secret")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func Test_GenUniqID(t *testing.T) {
	SetupIDWorker(1)
	a := GenUniqIDStr()
	b := GenUniqIDStr()
	assert.NotEqual(t, a, b)
}

func Test_ParseAcceptLanguage(t *testing.T) {
	res := ParseAcceptLanguage("es-CO,es;q=0.9,en;q=0.8")
	assert.Equal(t, "es-CO", res[0].Tag)

	res = ParseAcceptLanguage("en;q=0.5,es;q=0.9")
	assert.Equal(t, "es", res[0].Tag)

	assert.Empty(t, ParseAcceptLanguage(""))
}
