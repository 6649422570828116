package card

import (
	"regexp"
	"strings"
)

// Per-field input filters. Each one is total (never fails) and idempotent:
// applying a filter to its own output is a no-op. They run on every mutation,
// so the draft never holds rule-violating characters.

var (
	reNoLetras  = regexp.MustCompile(`[^a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]`)
	reNoDigitos = regexp.MustCompile(`[^0-9]`)
)

// Field length bounds, matching the emission form's maxLength attributes.
const (
	MaxLenNombre   = 20
	MaxLenContacto = 20
	MaxLenAlergias = 20
	MaxLenTelefono = 10
	MaxLenAnio     = 4
	MaxLenCURP     = 18
	MaxLenArea     = 24
)

// FiltrarLetras keeps Spanish letters and spaces and uppercases the result.
func FiltrarLetras(s string) string {
	return strings.ToUpper(reNoLetras.ReplaceAllString(s, ""))
}

// FiltrarDigitos keeps decimal digits only.
func FiltrarDigitos(s string) string {
	return reNoDigitos.ReplaceAllString(s, "")
}

// FiltrarLibre uppercases without restricting the character class; length is
// bounded separately via Truncar.
func FiltrarLibre(s string) string {
	return strings.ToUpper(s)
}

// Truncar bounds a string to max runes without splitting a character.
func Truncar(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
