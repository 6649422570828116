package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/card"
)

// APIClient talks to the credentials HTTP API and satisfies card.Persistence.
// The printing CLI uses it so the same designer logic drives both the server
// and remote editing sessions.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *APIClient) Crear(ctx context.Context, p card.SavePayload) (*card.SaveResult, error) {
	var out card.SaveResult
	if err := c.do(ctx, http.MethodPost, "/api/credentials", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Actualizar(ctx context.Context, id int, p card.SavePayload) (*card.SaveResult, error) {
	var out card.SaveResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/credentials/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Buscar(ctx context.Context, term string) ([]card.BackendCredencial, error) {
	var out struct {
		Data []card.BackendCredencial `json:"data"`
	}
	path := "/api/credentials/search?term=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *APIClient) ObtenerPorID(ctx context.Context, id int) (*card.BackendCredencial, error) {
	var out struct {
		Credencial card.BackendCredencial `json:"credencial"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/credentials/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Credencial, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal payload: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return card.ErrConexion
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// statusError maps HTTP failures to the operator-facing error taxonomy.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return card.ErrSesionExpirada
	case code == http.StatusNotFound:
		return card.ErrNoEncontrada
	case code >= 400 && code < 500:
		return card.ErrDatosInvalidos
	default:
		return card.ErrServidor
	}
}
