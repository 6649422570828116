//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Full credential lifecycle (login → emitir → buscar → renovar → deshabilitar → validar → habilitar)
//   T-E2E-2: Public validation requires no token and reflects estado changes
//   T-E2E-3: Role enforcement (operador base cannot disable)
//   T-E2E-4: Bitácora records every lifecycle action
//   T-E2E-5: CSV import creates one credential per usable row

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SistemasCRMC/credenciales/internal/config"
	"github.com/SistemasCRMC/credenciales/internal/infra"
	"github.com/SistemasCRMC/credenciales/internal/model"
	"github.com/SistemasCRMC/credenciales/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func credencialBody(nombre string) map[string]any {
	return map[string]any{
		"nombre_completo": nombre,
		"area":            "SOCORROS",
		"color_area":      "#f79021",
		"vigencia":        "2099",
		"tipo_sangre":     "O+",
	}
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("credenciales_test"),
		tcPostgres.WithUsername("credenciales"),
		tcPostgres.WithPassword("credenciales"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		StoragePath:        t.TempDir(),
		AssetsPath:         t.TempDir(),
		Domain:             "http://localhost:8000",
	}

	// Connect DB; NewDatabase also runs the migrations.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("cruzroja2026"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Nombre: "Admin E2E", Correo: "admin@e2e.test",
		PasswordHash: string(hash), Rol: "admin", Activo: true,
	}).Error)

	fotos, err := infra.NewFotoStore(cfg.StoragePath)
	require.NoError(t, err)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, db, rdb, fotos, mailCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Login as admin
	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"correo": "admin@e2e.test", "password": "cruzroja2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
	}
}

func crearCredencial(t *testing.T, env *testEnv, nombre string) int {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/credentials", jsonBody(t, credencialBody(nombre)), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		CredentialID int     `json:"credentialId"`
		QRCodigoURL  *string `json:"qr_codigo_url"`
	}
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.CredentialID)
	return created.CredentialID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: Full credential lifecycle
func TestE2E_CredencialLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	// 1. Emitir
	id := crearCredencial(t, env, "JUAN PÉREZ LÓPEZ")

	// 2. Buscar por nombre
	searchResp := do(t, env.server, "GET", "/api/credentials/search?term=JUAN", nil, env.token)
	require.Equal(t, http.StatusOK, searchResp.StatusCode)
	var list struct {
		Data  []map[string]any `json:"data"`
		Total int64            `json:"total"`
	}
	decodeJSON(t, searchResp, &list)
	require.EqualValues(t, 1, list.Total)
	assert.Equal(t, "JUAN PÉREZ LÓPEZ", list.Data[0]["nombre_completo"])
	assert.Equal(t, "emitida", list.Data[0]["estado"])

	// 3. Renovar
	body := credencialBody("JUAN PÉREZ LÓPEZ")
	body["vigencia"] = "2098"
	renewResp := do(t, env.server, "PUT", fmt.Sprintf("/api/credentials/%d", id), jsonBody(t, body), env.token)
	require.Equal(t, http.StatusOK, renewResp.StatusCode)

	getResp := do(t, env.server, "GET", fmt.Sprintf("/api/credentials/%d", id), nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var detail struct {
		Credencial map[string]any `json:"credencial"`
	}
	decodeJSON(t, getResp, &detail)
	assert.Equal(t, "renovada", detail.Credencial["estado"])
	assert.Equal(t, "2098", detail.Credencial["vigencia"])

	// 4. Deshabilitar y habilitar
	disResp := do(t, env.server, "POST", fmt.Sprintf("/api/credentials/%d/disable", id), nil, env.token)
	require.Equal(t, http.StatusNoContent, disResp.StatusCode)

	enResp := do(t, env.server, "POST", fmt.Sprintf("/api/credentials/%d/enable", id), nil, env.token)
	require.Equal(t, http.StatusNoContent, enResp.StatusCode)

	getResp = do(t, env.server, "GET", fmt.Sprintf("/api/credentials/%d", id), nil, env.token)
	decodeJSON(t, getResp, &detail)
	assert.Equal(t, "emitida", detail.Credencial["estado"])
}

// T-E2E-2: Public validation, no token, estado changes visible
func TestE2E_ValidacionPublica(t *testing.T) {
	env := setupTestEnv(t)
	id := crearCredencial(t, env, "MARÍA GARCÍA")

	valResp := do(t, env.server, "GET", fmt.Sprintf("/api/credentials/%d/validate", id), nil, "")
	require.Equal(t, http.StatusOK, valResp.StatusCode)
	var val struct {
		Valida  bool   `json:"valida"`
		Estatus string `json:"estatus"`
	}
	decodeJSON(t, valResp, &val)
	assert.True(t, val.Valida)
	assert.Equal(t, "Vigente", val.Estatus)

	// Disabling invalidates the cached validation immediately.
	disResp := do(t, env.server, "POST", fmt.Sprintf("/api/credentials/%d/disable", id), nil, env.token)
	require.Equal(t, http.StatusNoContent, disResp.StatusCode)

	valResp = do(t, env.server, "GET", fmt.Sprintf("/api/credentials/%d/validate", id), nil, "")
	require.Equal(t, http.StatusOK, valResp.StatusCode)
	decodeJSON(t, valResp, &val)
	assert.False(t, val.Valida)
	assert.Equal(t, "Deshabilitada", val.Estatus)

	// Unknown id
	missResp := do(t, env.server, "GET", "/api/credentials/99999/validate", nil, "")
	assert.Equal(t, http.StatusNotFound, missResp.StatusCode)
}

// T-E2E-3: Role enforcement
func TestE2E_RolBaseNoPuedeDeshabilitar(t *testing.T) {
	env := setupTestEnv(t)
	id := crearCredencial(t, env, "PEDRO SÁNCHEZ")

	// Register a base-role operator and log in as them.
	regResp := do(t, env.server, "POST", "/api/auth/register",
		jsonBody(t, map[string]string{
			"nombre": "Operador Base", "correo": "operador@e2e.test", "password": "password123",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)

	loginResp := do(t, env.server, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"correo": "operador@e2e.test", "password": "password123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)

	// The base role can issue but not disable.
	disResp := do(t, env.server, "POST", fmt.Sprintf("/api/credentials/%d/disable", id), nil, loginBody.AccessToken)
	assert.Equal(t, http.StatusForbidden, disResp.StatusCode)

	otherID := crearCredencialCon(t, env, loginBody.AccessToken, "LUCÍA TORRES")
	assert.NotZero(t, otherID)
}

func crearCredencialCon(t *testing.T, env *testEnv, token, nombre string) int {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/credentials", jsonBody(t, credencialBody(nombre)), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		CredentialID int `json:"credentialId"`
	}
	decodeJSON(t, resp, &created)
	return created.CredentialID
}

// T-E2E-5: CSV import creates one credential per usable row
func TestE2E_ImportarCSV(t *testing.T) {
	env := setupTestEnv(t)

	csv := "nombre,telefono,sangre\n" +
		"CARLOS RUIZ,9981112233,A+\n" +
		"SOFÍA HERNÁNDEZ,9984445566,B-\n" +
		",0000000000,O+\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "padron.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", env.server.URL+"/api/credentials/import", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Importadas int `json:"importadas"`
		Errores    []struct {
			Fila   int    `json:"fila"`
			Detail string `json:"detail"`
		} `json:"errores"`
	}
	decodeJSON(t, resp, &result)
	assert.Equal(t, 2, result.Importadas)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, 4, result.Errores[0].Fila)

	searchResp := do(t, env.server, "GET", "/api/credentials/search?term=CARLOS", nil, env.token)
	require.Equal(t, http.StatusOK, searchResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, searchResp, &list)
	assert.EqualValues(t, 1, list.Total)
}

// T-E2E-4: Bitácora records every action
func TestE2E_BitacoraRegistraAcciones(t *testing.T) {
	env := setupTestEnv(t)
	id := crearCredencial(t, env, "ANA MARTÍNEZ")

	renewResp := do(t, env.server, "PUT", fmt.Sprintf("/api/credentials/%d", id),
		jsonBody(t, credencialBody("ANA MARTÍNEZ")), env.token)
	require.Equal(t, http.StatusOK, renewResp.StatusCode)

	disResp := do(t, env.server, "POST", fmt.Sprintf("/api/credentials/%d/disable", id), nil, env.token)
	require.Equal(t, http.StatusNoContent, disResp.StatusCode)

	bitResp := do(t, env.server, "GET", "/api/bitacora", nil, env.token)
	require.Equal(t, http.StatusOK, bitResp.StatusCode)
	var bit struct {
		Data []struct {
			Accion       string `json:"accion"`
			CredencialID int    `json:"credencial_id"`
			EstadoActual string `json:"estado_actual"`
			Usuario      string `json:"usuario"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, bitResp, &bit)
	require.EqualValues(t, 3, bit.Total)

	// Newest first; every entry shows the credential's current estado.
	assert.Equal(t, "deshabilitacion", bit.Data[0].Accion)
	assert.Equal(t, "renovacion", bit.Data[1].Accion)
	assert.Equal(t, "emision", bit.Data[2].Accion)
	for _, e := range bit.Data {
		assert.Equal(t, id, e.CredencialID)
		assert.Equal(t, "deshabilitada", e.EstadoActual)
		assert.Equal(t, "Admin E2E", e.Usuario)
	}
}
