package card

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textos(l Layout) []string {
	var out []string
	for _, e := range l.Elements {
		if e.Kind == KindText || e.Kind == KindParagraph {
			out = append(out, e.Text)
		}
	}
	return out
}

func TestRenderFrontCanvasFijo(t *testing.T) {
	areas := NewRegistry(MemStore{})
	l := RenderFront(Empty(areas))

	assert.Equal(t, CanvasW, l.W)
	assert.Equal(t, CanvasH, l.H)
	require.NotEmpty(t, l.Elements)
}

func TestRenderFrontContenido(t *testing.T) {
	id := 7
	d := CredentialData{
		Name:         "ANA LOPEZ",
		Area:         "SOCORROS",
		AreaColor:    "#f79021",
		Vigencia:     "2026",
		CredentialID: &id,
		Foto:         URLFoto("https://cdn.example.com/ana.jpg"),
	}
	l := RenderFront(d)

	ts := textos(l)
	assert.Contains(t, ts, "ANA LOPEZ")
	assert.Contains(t, ts, "ÁREA: SOCORROS")
	assert.Contains(t, ts, "ID: 07")
	assert.Contains(t, ts, "2026")

	// El color del área tiñe la barra inferior y el aro de la foto.
	var barras, aros int
	for _, e := range l.Elements {
		if e.Kind == KindRect && e.Color == "#f79021" {
			barras++
		}
		if e.Kind == KindPhotoCircle {
			aros++
			assert.Equal(t, "#f79021", e.Color)
			assert.Equal(t, "https://cdn.example.com/ana.jpg", e.ImageRef)
		}
	}
	assert.GreaterOrEqual(t, barras, 2)
	assert.Equal(t, 1, aros)
}

func TestRenderFrontVacia(t *testing.T) {
	areas := NewRegistry(MemStore{})
	l := RenderFront(Empty(areas))
	ts := textos(l)

	assert.Contains(t, ts, "NOMBRE")
	assert.Contains(t, ts, "ID: N/A")

	// Sin foto el círculo queda como aro vacío.
	for _, e := range l.Elements {
		if e.Kind == KindPhotoCircle {
			assert.Empty(t, e.ImageRef)
		}
	}
}

func TestRenderBackRespaldos(t *testing.T) {
	areas := NewRegistry(MemStore{})
	l := RenderBack(Empty(areas))
	ts := textos(l)

	assert.Contains(t, ts, "EMERGENCIAS: N/A")
	assert.Contains(t, ts, "ALERGIAS: NINGUNA")
	assert.Contains(t, ts, "CURP O NSS: No especificado")
	assert.Contains(t, ts, "TIPO DE SANGRE: O+")

	var hayVision, hayMision bool
	for _, s := range ts {
		if strings.HasPrefix(s, "Somos líderes") {
			hayVision = true
		}
		if strings.HasPrefix(s, "Cruz Roja Mexicana es") {
			hayMision = true
		}
	}
	assert.True(t, hayVision)
	assert.True(t, hayMision)
}

func TestRenderBackQR(t *testing.T) {
	d := CredentialData{QRCodeURL: "https://cdn.example.com/qr/12.png", TipoSangre: "O+"}
	l := RenderBack(d)

	var qr *Element
	for i, e := range l.Elements {
		if e.Kind == KindImage && e.ImageRef == d.QRCodeURL {
			qr = &l.Elements[i]
		}
	}
	require.NotNil(t, qr)
	assert.Equal(t, qr.W, qr.H)
}

// ── Compositor ────────────────────────────────────────────────────────────────

type resolverConteo struct {
	pedidos []string
	err     error
}

func (r *resolverConteo) Resolve(ref string) ([]byte, string, error) {
	r.pedidos = append(r.pedidos, ref)
	return nil, "", r.err
}

func TestComposeDocumento(t *testing.T) {
	areas := NewRegistry(MemStore{})
	d := Empty(areas)
	d.Name = "ANA LOPEZ"

	var buf bytes.Buffer
	err := NewCompositor(&resolverConteo{}).Compose(&buf, RenderFront(d), RenderBack(d))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestComposeImagenesIrresolubles(t *testing.T) {
	// Una imagen que no resuelve se omite; el documento sale igual.
	areas := NewRegistry(MemStore{})
	d := Empty(areas)
	d.Foto = URLFoto("https://cdn.example.com/caida.jpg")

	res := &resolverConteo{err: errors.New("timeout")}
	var buf bytes.Buffer
	err := NewCompositor(res).Compose(&buf, RenderFront(d), RenderBack(d))
	require.NoError(t, err)
	assert.NotEmpty(t, res.pedidos)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestComposeSinSalida(t *testing.T) {
	err := NewCompositor(nil).Compose(nil, Layout{W: CanvasW, H: CanvasH}, Layout{W: CanvasW, H: CanvasH})
	assert.ErrorIs(t, err, ErrImpresion)
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#f79021")
	assert.Equal(t, []int{0xf7, 0x90, 0x21}, []int{r, g, b})

	r, g, b = hexToRGB("rojo")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}
