package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCredentialID(t *testing.T) {
	assert.Equal(t, "N/A", FormatCredentialID(nil))

	siete := 7
	assert.Equal(t, "07", FormatCredentialID(&siete))

	cuarentaYDos := 42
	assert.Equal(t, "42", FormatCredentialID(&cuarentaYDos))
}

func TestEmptyDefaults(t *testing.T) {
	areas := NewRegistry(MemStore{})
	d := Empty(areas)

	assert.Equal(t, DefaultArea, d.Area)
	assert.Equal(t, "#319dd1", d.AreaColor)
	assert.Equal(t, DefaultVigencia, d.Vigencia)
	assert.Equal(t, DefaultTipoSangre, d.TipoSangre)
	assert.Equal(t, DefaultDelegacion, d.Delegation)
	assert.True(t, d.Foto.IsPlaceholder())
	assert.True(t, d.ShowPrinciples)
	assert.Nil(t, d.CredentialID)
	assert.Equal(t, EstadoEmitida, d.Estado)
}

func TestCompleteness(t *testing.T) {
	areas := NewRegistry(MemStore{})
	d := Empty(areas)
	c := d.Completeness()
	assert.False(t, c.Nombre)
	assert.False(t, c.Fotografia)
	assert.False(t, c.Emergencias)

	d.Name = "ANA LOPEZ"
	d.Foto = URLFoto("https://cdn.example.com/f.jpg")
	d.EmergencyContact = "LUIS LOPEZ"
	c = d.Completeness()
	assert.True(t, c.Nombre)
	assert.True(t, c.Fotografia)
	assert.True(t, c.Emergencias)
}

func TestValidezPrecedencia(t *testing.T) {
	ahora := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Deshabilitada manda aunque la vigencia sea futura.
	d := CredentialData{Estado: EstadoDeshabilitada, Vigencia: "2099"}
	assert.Equal(t, Deshabilitada, d.Validez(ahora))
	assert.Equal(t, "Deshabilitada", d.ValidezLabel(ahora))

	// Año vencido gana sobre el estado almacenado.
	d = CredentialData{Estado: EstadoEmitida, Vigencia: "2025"}
	assert.Equal(t, Vencida, d.Validez(ahora))
	assert.Equal(t, "Vencida", d.ValidezLabel(ahora))

	// Vigente en el año en curso.
	d = CredentialData{Estado: EstadoEmitida, Vigencia: "2026"}
	assert.Equal(t, Valida, d.Validez(ahora))
	assert.Equal(t, "Vigente", d.ValidezLabel(ahora))

	d = CredentialData{Estado: EstadoRenovada, Vigencia: "2027"}
	assert.Equal(t, Valida, d.Validez(ahora))
	assert.Equal(t, "Renovada", d.ValidezLabel(ahora))
}

func TestValidezVigenciaIlegible(t *testing.T) {
	ahora := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	d := CredentialData{Estado: EstadoEmitida, Vigencia: "permanente"}
	assert.Equal(t, Valida, d.Validez(ahora))
}

func TestParseFoto(t *testing.T) {
	assert.True(t, ParseFoto("").IsPlaceholder())
	assert.True(t, ParseFoto(PlaceholderRef).IsPlaceholder())

	f := ParseFoto("data:image/png;base64,AAAA")
	data, ok := f.Base64()
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", data)

	f = ParseFoto("https://cdn.example.com/foto.jpg")
	url, ok := f.URL()
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/foto.jpg", url)

	assert.Equal(t, PlaceholderRef, PlaceholderFoto().Ref())
}
