// cmd/imprimir/main.go — Genera el PDF de impresión de una credencial
// existente contra la API.
//
// Uso:
//
//	imprimir -api http://localhost:8000 -token $TOKEN -id 42 -out credencial.pdf
//	imprimir -api http://localhost:8000 -token $TOKEN -buscar "JUAN PÉREZ" -out credencial.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/card"
	"github.com/SistemasCRMC/credenciales/internal/infra"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8000", "URL base de la API")
	token := flag.String("token", os.Getenv("CREDENCIALES_TOKEN"), "token JWT de acceso")
	id := flag.Int("id", 0, "ID de la credencial a imprimir")
	term := flag.String("buscar", "", "término de búsqueda (si no se conoce el ID)")
	out := flag.String("out", "credencial.pdf", "archivo PDF de salida")
	assets := flag.String("assets", "./assets", "directorio de recursos gráficos")
	areasDir := flag.String("areas", defaultAreasDir(), "directorio de áreas personalizadas")
	flag.Parse()

	if *token == "" {
		fail("falta el token: use -token o la variable CREDENCIALES_TOKEN")
	}
	if *id == 0 && *term == "" {
		fail("indique -id o -buscar")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := infra.NewAPIClient(*apiURL, *token)

	cred, err := resolverCredencial(ctx, api, *id, *term)
	if err != nil {
		fail("no se pudo obtener la credencial: %v", err)
	}

	// Las rutas /static/... del backend son relativas a la API, no al disco
	// local; se vuelven absolutas para que el resolver las baje por HTTP.
	cred.FotografiaURL = absolutar(*apiURL, cred.FotografiaURL)
	cred.QRCodigoURL = absolutar(*apiURL, cred.QRCodigoURL)

	// Credenciales antiguas pueden venir sin color de área; se resuelve con
	// el registro local, que incluye las áreas personalizadas persistidas
	// entre sesiones en -areas.
	if cred.ColorArea == "" {
		store, err := infra.NewFileStore(*areasDir)
		if err != nil {
			fail("no se pudo abrir el directorio de áreas %s: %v", *areasDir, err)
		}
		cred.ColorArea = card.NewRegistry(store).Lookup(cred.Area)
	}

	data := card.FromBackend(*cred)
	resolver := infra.NewImageResolver(*assets, "")

	f, err := os.Create(*out)
	if err != nil {
		fail("no se pudo crear %s: %v", *out, err)
	}
	defer f.Close()

	comp := card.NewCompositor(resolver)
	if err := comp.Compose(f, card.RenderFront(data), card.RenderBack(data)); err != nil {
		fail("error al generar el PDF: %v", err)
	}

	fmt.Printf("✅ PDF generado: %s (credencial %s, %s)\n",
		*out, card.FormatCredentialID(data.CredentialID), data.Name)
}

func resolverCredencial(ctx context.Context, api *infra.APIClient, id int, term string) (*card.BackendCredencial, error) {
	if id != 0 {
		return api.ObtenerPorID(ctx, id)
	}
	matches, err := api.Buscar(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("sin resultados para %q", term)
	}
	if len(matches) > 1 {
		fmt.Fprintf(os.Stderr, "⚠️  %d coincidencias para %q, usando la primera\n", len(matches), term)
	}
	return &matches[0], nil
}

func absolutar(base, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.TrimSuffix(base, "/") + ref
	}
	return ref
}

func defaultAreasDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "credenciales")
	}
	return ".credenciales"
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
	os.Exit(1)
}
