package tests

import (
	"context"
	"testing"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/model"
	"github.com/SistemasCRMC/credenciales/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBitacora(repo *stubBitacoraRepo, accion string, cred *model.Credencial, usuario *model.Usuario) {
	repo.entries = append(repo.entries, model.Bitacora{
		ID:           len(repo.entries) + 1,
		Fecha:        time.Now(),
		Accion:       accion,
		CredencialID: cred.ID,
		UsuarioID:    usuario.ID,
		Credencial:   cred,
		Usuario:      usuario,
	})
}

func TestBitacoraListar_MapeaCredencialYUsuario(t *testing.T) {
	repo := &stubBitacoraRepo{}
	cred := &model.Credencial{ID: 7, NombreCompleto: "JUAN PÉREZ", Estado: "renovada"}
	op := &model.Usuario{ID: 1, Nombre: "Operadora Uno"}
	seedBitacora(repo, model.AccionEmision, cred, op)
	seedBitacora(repo, model.AccionRenovacion, cred, op)
	svc := service.NewBitacoraService(repo)

	resp, err := svc.Listar(context.Background(), dto.BitacoraFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	entry := resp.Data[0]
	assert.Equal(t, 7, entry.CredencialID)
	assert.Equal(t, "JUAN PÉREZ", entry.NombreCompleto)
	// Shows the current estado, not the one at the time of the action.
	assert.Equal(t, "renovada", entry.EstadoActual)
	assert.Equal(t, "Operadora Uno", entry.Usuario)
}

func TestBitacoraListar_FiltraPorAccion(t *testing.T) {
	repo := &stubBitacoraRepo{}
	cred := &model.Credencial{ID: 3, NombreCompleto: "MARÍA LÓPEZ", Estado: "emitida"}
	op := &model.Usuario{ID: 1, Nombre: "Operadora Uno"}
	seedBitacora(repo, model.AccionEmision, cred, op)
	seedBitacora(repo, model.AccionDeshabilitacion, cred, op)
	seedBitacora(repo, model.AccionHabilitacion, cred, op)
	svc := service.NewBitacoraService(repo)

	resp, err := svc.Listar(context.Background(), dto.BitacoraFilter{
		Accion: model.AccionDeshabilitacion, Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.AccionDeshabilitacion, resp.Data[0].Accion)
	assert.EqualValues(t, 1, resp.Total)
}

func TestBitacoraListar_SinRelacionesPrecargadas(t *testing.T) {
	// Rows whose credential or operator was never preloaded degrade to empty
	// strings instead of panicking.
	repo := &stubBitacoraRepo{}
	repo.entries = append(repo.entries, model.Bitacora{
		ID: 1, Fecha: time.Now(), Accion: model.AccionEmision, CredencialID: 9, UsuarioID: 2,
	})
	svc := service.NewBitacoraService(repo)

	resp, err := svc.Listar(context.Background(), dto.BitacoraFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Empty(t, resp.Data[0].NombreCompleto)
	assert.Empty(t, resp.Data[0].Usuario)
}
