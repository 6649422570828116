package card

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

// Physical page size of the printed credential.
const (
	PageWmm = 86.0
	PageHmm = 54.0
)

// printSafety shaves a little off the exact fit ratio so nothing ever clips
// at the page edge (86×54mm holds the 380×240 canvas at ~0.225mm per unit).
const printSafety = 0.994

// ImageResolver fetches the bytes behind a layout image reference before
// composition starts. Returning resolved images up front replaces the old
// "wait and hope rendering finished" settle delay with an explicit
// completion point. A (nil, "", nil) return means "reference not available";
// the element is skipped.
type ImageResolver interface {
	// Resolve returns the raw image bytes and their type ("PNG" or "JPG").
	Resolve(ref string) ([]byte, string, error)
}

// Compositor assembles the standalone two-page print document: one fixed-size
// physical page per face, front first, nothing after the back.
type Compositor struct {
	resolver ImageResolver
}

func NewCompositor(resolver ImageResolver) *Compositor {
	return &Compositor{resolver: resolver}
}

// Compose writes the print PDF for the two rendered faces. Image references
// that cannot be resolved are skipped (logged), mirroring how inaccessible
// stylesheets were skipped; a failure to emit the document itself is fatal.
func (c *Compositor) Compose(w io.Writer, front, back Layout) error {
	if w == nil {
		return ErrImpresion
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWmm, Ht: PageHmm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, face := range []Layout{front, back} {
		pdf.AddPage()
		c.drawFace(pdf, tr, face)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrImpresion, err)
	}
	return nil
}

// drawFace paints one layout scaled and centered on the current page.
func (c *Compositor) drawFace(pdf *fpdf.Fpdf, tr func(string) string, face Layout) {
	// Uniform scale, the smaller of the two ratios so content never clips.
	k := PageWmm / face.W
	if ky := PageHmm / face.H; ky < k {
		k = ky
	}
	k *= printSafety
	offX := (PageWmm - face.W*k) / 2
	offY := (PageHmm - face.H*k) / 2

	for _, e := range face.Elements {
		x := offX + e.X*k
		y := offY + e.Y*k
		w := e.W * k
		h := e.H * k

		switch e.Kind {
		case KindRect:
			r, g, b := hexToRGB(e.Color)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(x, y, w, h, "F")

		case KindText, KindParagraph:
			r, g, b := hexToRGB(e.Color)
			pdf.SetTextColor(r, g, b)
			style := ""
			if e.Bold {
				style = "B"
			}
			// FontSize is in canvas units; convert through the scale to points.
			pdf.SetFont("Helvetica", style, e.FontSize*k*72/25.4)
			text := tr(e.Text)
			if e.Kind == KindParagraph {
				pdf.SetXY(x, y)
				pdf.MultiCell(w, e.FontSize*k*1.25, text, "", "J", false)
				break
			}
			align := "L"
			switch e.Align {
			case AlignCenter:
				align = "C"
			case AlignRight:
				align = "R"
			}
			pdf.SetXY(x, y)
			if e.Truncate {
				text = c.fitText(pdf, text, w)
			}
			pdf.CellFormat(w, h, text, "", 0, align, false, 0, "")

		case KindImage:
			c.placeImage(pdf, e.ImageRef, x, y, w, h)

		case KindPhotoCircle:
			radius := w / 2
			cx, cy := x+radius, y+radius
			if e.ImageRef != "" {
				pdf.ClipCircle(cx, cy, radius, false)
				c.placeImage(pdf, e.ImageRef, x, y, w, h)
				pdf.ClipEnd()
			}
			r, g, b := hexToRGB(e.Color)
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(e.Border * k)
			pdf.Circle(cx, cy, radius, "D")
		}
	}
}

// placeImage registers and draws a resolved image; unresolved references are
// skipped so a missing photo or seal never aborts the whole print.
func (c *Compositor) placeImage(pdf *fpdf.Fpdf, ref string, x, y, w, h float64) {
	if ref == "" || c.resolver == nil {
		return
	}
	data, imgType, err := c.resolver.Resolve(ref)
	if err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("print: image not resolved, skipping")
		return
	}
	if len(data) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: imgType}
	if pdf.GetImageInfo(ref) == nil {
		pdf.RegisterImageOptionsReader(ref, opts, bytes.NewReader(data))
	}
	pdf.ImageOptions(ref, x, y, w, h, false, opts, 0, "")
}

// fitText shortens a string with an ellipsis until it fits the cell width.
func (c *Compositor) fitText(pdf *fpdf.Fpdf, text string, w float64) string {
	if pdf.GetStringWidth(text) <= w {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if candidate := string(runes) + "..."; pdf.GetStringWidth(candidate) <= w {
			return candidate
		}
	}
	return string(runes)
}

// hexToRGB parses #rrggbb; malformed values fall back to black.
func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
