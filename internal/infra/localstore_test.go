package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasCRMC/credenciales/internal/card"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("inexistente")
	assert.False(t, ok)

	require.NoError(t, store.Set("clave", `{"LOGÍSTICA":"#123456"}`))
	got, ok := store.Get("clave")
	require.True(t, ok)
	assert.Equal(t, `{"LOGÍSTICA":"#123456"}`, got)

	require.NoError(t, store.Remove("clave"))
	_, ok = store.Get("clave")
	assert.False(t, ok)

	// Borrar una clave que no existe no es un error.
	assert.NoError(t, store.Remove("clave"))
}

func TestFileStoreCreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "areas")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStorePersisteAreasEntreSesiones(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	r := card.NewRegistry(store)
	require.True(t, r.Add("LOGÍSTICA", "#123456"))
	require.True(t, r.Add("BRIGADAS", "#654321"))

	// Un proceso nuevo sobre el mismo directorio ve las personalizadas.
	store2, err := NewFileStore(dir)
	require.NoError(t, err)
	r2 := card.NewRegistry(store2)
	assert.Equal(t, "#123456", r2.Lookup("LOGÍSTICA"))
	assert.Equal(t, "#654321", r2.Lookup("BRIGADAS"))
	assert.Equal(t, card.DefaultAreaColor, r2.Lookup("DESCONOCIDA"))
}

func TestFileStoreArchivoCorrupto(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clave.json"), []byte("{no es json"), 0o644))
	_, ok := store.Get("clave")
	assert.False(t, ok)
}
