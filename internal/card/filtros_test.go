package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltrarLetras(t *testing.T) {
	assert.Equal(t, "JUAN PÉREZ", FiltrarLetras("Juan3 Pérez!"))
	assert.Equal(t, "ÑANDÚ", FiltrarLetras("ñandú"))
	assert.Equal(t, "", FiltrarLetras("123-456"))
}

func TestFiltrarLetrasIdempotente(t *testing.T) {
	out := FiltrarLetras("Mar1a de! los Ángeles")
	assert.Equal(t, out, FiltrarLetras(out))
}

func TestFiltrarDigitos(t *testing.T) {
	assert.Equal(t, "123", FiltrarDigitos("a1b2c3"))
	assert.Equal(t, "9981234567", FiltrarDigitos("(998) 123-4567"))
	assert.Equal(t, "", FiltrarDigitos("sin números"))
}

func TestFiltrarLibre(t *testing.T) {
	assert.Equal(t, "PEGJ900101HQRRZN09", FiltrarLibre("pegj900101hqrrzn09"))
}

func TestTruncar(t *testing.T) {
	assert.Equal(t, "ABCDE", Truncar("ABCDEFG", 5))
	assert.Equal(t, "ABC", Truncar("ABC", 5))
	// No corta a mitad de un carácter multibyte.
	assert.Equal(t, "ÁÉÍ", Truncar("ÁÉÍÓÚ", 3))
	assert.Equal(t, "ABC", Truncar("ABC", 0))
}
