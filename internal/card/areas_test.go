package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(MemStore{})

	assert.Equal(t, "#f79021", r.Lookup("SOCORROS"))
	assert.Equal(t, "#319dd1", r.Lookup("SERVICIOS MÉDICOS"))
	assert.Equal(t, DefaultAreaColor, r.Lookup("ÁREA INEXISTENTE"))
}

func TestRegistryAdd(t *testing.T) {
	store := MemStore{}
	r := NewRegistry(store)

	require.True(t, r.Add("logística", "#123456"))
	assert.Equal(t, "#123456", r.Lookup("LOGÍSTICA"))

	// La colisión con una personalizada o integrada no modifica nada.
	assert.False(t, r.Add("LOGÍSTICA", "#000000"))
	assert.False(t, r.Add("socorros", "#000000"))
	assert.Equal(t, "#123456", r.Lookup("LOGÍSTICA"))
	assert.Equal(t, "#f79021", r.Lookup("SOCORROS"))

	assert.False(t, r.Add("   ", "#000000"))
}

func TestRegistryPersistencia(t *testing.T) {
	store := MemStore{}
	r := NewRegistry(store)
	require.True(t, r.Add("LOGÍSTICA", "#123456"))
	require.True(t, r.Add("BRIGADAS", "#654321"))

	// Un registro nuevo sobre el mismo almacén recupera las personalizadas.
	r2 := NewRegistry(store)
	assert.Equal(t, "#123456", r2.Lookup("LOGÍSTICA"))
	assert.Equal(t, "#654321", r2.Lookup("BRIGADAS"))
	assert.True(t, r2.Exists("LOGÍSTICA"))
}

func TestRegistryOrdenEstableTrasRecarga(t *testing.T) {
	store := MemStore{}
	r := NewRegistry(store)
	require.True(t, r.Add("LOGÍSTICA", "#123456"))
	require.True(t, r.Add("BRIGADAS", "#654321"))
	require.True(t, r.Add("ALMACÉN", "#abcdef"))

	// El objeto JSON persistido no conserva el orden de alta, así que tras
	// recargar la cola de personalizadas queda alfabética — y sobre todo,
	// igual entre recargas.
	esperada := []AreaColor{
		{"ALMACÉN", "#abcdef"},
		{"BRIGADAS", "#654321"},
		{"LOGÍSTICA", "#123456"},
	}
	for i := 0; i < 3; i++ {
		merged := NewRegistry(store).Merged()
		require.Len(t, merged, len(builtinAreas)+3)
		assert.Equal(t, builtinAreas, merged[:len(builtinAreas)])
		assert.Equal(t, esperada, merged[len(builtinAreas):])
	}
}

func TestRegistryAlmacenCorrupto(t *testing.T) {
	store := MemStore{StorageKey: "{no es json"}
	r := NewRegistry(store)

	// Degrada a "sin áreas personalizadas" sin fallar.
	assert.Equal(t, DefaultAreaColor, r.Lookup("LOGÍSTICA"))
	assert.Len(t, r.Merged(), len(builtinAreas))
}

type fallaStore struct{}

func (fallaStore) Get(string) (string, bool) { return "", false }
func (fallaStore) Set(string, string) error  { return errors.New("disco lleno") }
func (fallaStore) Remove(string) error       { return nil }

func TestRegistryFalloDeAlmacen(t *testing.T) {
	r := NewRegistry(fallaStore{})

	// El fallo al persistir no impide usar el área en memoria.
	assert.True(t, r.Add("LOGÍSTICA", "#123456"))
	assert.Equal(t, "#123456", r.Lookup("LOGÍSTICA"))
}

func TestRegistryMergedOrden(t *testing.T) {
	r := NewRegistry(MemStore{})
	require.True(t, r.Add("ZONA NORTE", "#111111"))
	require.True(t, r.Add("ZONA SUR", "#222222"))

	merged := r.Merged()
	require.Len(t, merged, len(builtinAreas)+2)
	assert.Equal(t, "VOLUNTARIADO", merged[0].Nombre)
	assert.Equal(t, "ZONA NORTE", merged[len(merged)-2].Nombre)
	assert.Equal(t, "ZONA SUR", merged[len(merged)-1].Nombre)
}
