package card

// The face renderers are pure: they turn a CredentialData into a serializable
// layout description on a fixed 380×240 canvas. Nothing here touches a live
// UI tree or the PDF library; the compositor consumes the description.
// The fixed canvas is the contract the print scaling is computed from, so
// long values are truncated with an ellipsis instead of reflowing.

// Canvas dimensions in logical units (on-screen pixels of the preview).
const (
	CanvasW = 380.0
	CanvasH = 240.0
)

// Asset references resolved by the compositor's ImageResolver.
const (
	AssetLogo       = "assets/cruz-roja-logo-text-combined.png"
	AssetSeal       = "assets/signature-seal.png"
	AssetPrincipios = "assets/ser-mejores-block.png"
)

// ElementKind discriminates layout elements.
type ElementKind int

const (
	KindRect ElementKind = iota
	KindText
	KindParagraph
	KindImage
	KindPhotoCircle
)

// Align values for text elements.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Element is one positioned item of a face. X/Y/W/H are in canvas units.
type Element struct {
	Kind ElementKind
	X, Y float64
	W, H float64

	// Fill or text color as #rrggbb. For KindPhotoCircle it is the ring color.
	Color string

	// Text fields (KindText / KindParagraph).
	Text     string
	FontSize float64
	Bold     bool
	Align    string
	Truncate bool

	// Image reference (KindImage / KindPhotoCircle): an asset name, an
	// absolute URL, a data URI, or empty for "no image".
	ImageRef string

	// Ring width for KindPhotoCircle.
	Border float64
}

// Layout is a rendered face.
type Layout struct {
	W, H     float64
	Elements []Element
}

func (l *Layout) add(e Element) { l.Elements = append(l.Elements, e) }

const (
	rojoInstitucional = "#dc2626"
	tintaOscura       = "#0f172a"
	blanco            = "#ffffff"
)

// RenderFront lays out the front face: wordmark and principles block on the
// left, vigencia and circular photo on the right, name band and the
// area-colored bar with the formatted ID along the bottom.
func RenderFront(d CredentialData) Layout {
	l := Layout{W: CanvasW, H: CanvasH}
	color := orDefault(d.AreaColor, DefaultAreaColor)

	// Card background.
	l.add(Element{Kind: KindRect, X: 0, Y: 0, W: CanvasW, H: CanvasH, Color: blanco})

	// Top red bar over the wordmark.
	l.add(Element{Kind: KindRect, X: 16, Y: 0, W: 150, H: 13, Color: rojoInstitucional})

	// Vigencia block, top right.
	l.add(Element{Kind: KindText, X: 294, Y: 8, W: 72, H: 8, Text: "VIGENCIA",
		FontSize: 7, Bold: true, Align: AlignRight, Color: tintaOscura})
	l.add(Element{Kind: KindText, X: 294, Y: 16, W: 72, H: 10, Text: d.Vigencia,
		FontSize: 9, Bold: true, Align: AlignRight, Color: tintaOscura})

	// Area-colored accent line under the vigencia.
	l.add(Element{Kind: KindRect, X: 340, Y: 26, W: 40, H: 5, Color: color})

	// Institutional wordmark.
	l.add(Element{Kind: KindImage, X: 16, Y: 18, W: 150, H: 58, ImageRef: AssetLogo})

	// Principles block under the wordmark.
	l.add(Element{Kind: KindImage, X: 16, Y: 80, W: 150, H: 88, ImageRef: AssetPrincipios})

	// Circular photo, ring in the area color. Placeholder draws an empty ring.
	photo := Element{Kind: KindPhotoCircle, X: 208, Y: 9, W: 174, H: 174, Color: color, Border: 6}
	if !d.Foto.IsPlaceholder() {
		photo.ImageRef = d.Foto.Ref()
	}
	l.add(photo)

	// Name band: short area-colored rule, then the single truncated line.
	l.add(Element{Kind: KindRect, X: 0, Y: 170, W: 268, H: 6, Color: color})
	l.add(Element{Kind: KindText, X: 16, Y: 180, W: CanvasW - 32, H: 24,
		Text: orDefault(d.Name, "NOMBRE"), FontSize: 20, Bold: true,
		Truncate: true, Align: AlignLeft, Color: tintaOscura})

	// Area + ID bar: full width, area left-aligned, formatted ID right-aligned.
	l.add(Element{Kind: KindRect, X: 0, Y: 212, W: CanvasW, H: 28, Color: color})
	l.add(Element{Kind: KindText, X: 23, Y: 219, W: 250, H: 15,
		Text: "ÁREA: " + orDefault(d.Area, "ÁREA"), FontSize: 14, Bold: true,
		Truncate: true, Align: AlignLeft, Color: blanco})
	l.add(Element{Kind: KindText, X: 280, Y: 219, W: 82, H: 15,
		Text: "ID: " + FormatCredentialID(d.CredentialID), FontSize: 14, Bold: true,
		Align: AlignRight, Color: blanco})

	return l
}

const (
	textoVision = "Somos líderes nacionales en movilización y vinculación social, a través de " +
		"redes solidarias que dan respuesta a las vulnerabilidades de las personas y " +
		"comunidades, con las que logramos: fortalecer la cultura de prevención y cuidado " +
		"de la salud de las personas; generar capacidades comunitarias para anticiparse, " +
		"hacer frente y recuperarse ante emergencias y desastres; mantener nuestra posición " +
		"como referentes en la atención a emergencias y desastres; actuando con apego a la " +
		"legalidad, los Principios Fundamentales y Valores del Movimiento Internacional de " +
		"la Cruz Roja y la Media Luna Roja."

	textoMision = "Cruz Roja Mexicana es una institución humanitaria de asistencia privada, que " +
		"forma parte del Movimiento Internacional de la Cruz Roja y la Media Luna Roja, " +
		"dedicada a preservar la salud, la vida y aliviar el sufrimiento humano, fomentando " +
		"la cultura del autocuidado en las personas y sus comunidades, a través de la " +
		"acción voluntaria."
)

// fallback picks the back-face substitute label for an empty value.
func fallback(v, label string) string {
	if v == "" {
		return label
	}
	return v
}

// RenderBack lays out the back face: validation QR and emergency data on the
// left half, the static vision/mission blocks on the right half.
func RenderBack(d CredentialData) Layout {
	l := Layout{W: CanvasW, H: CanvasH}
	half := CanvasW / 2

	l.add(Element{Kind: KindRect, X: 0, Y: 0, W: CanvasW, H: CanvasH, Color: blanco})

	// ── Left half ──
	l.add(Element{Kind: KindText, X: 0, Y: 5, W: half, H: 10, Text: "VALIDAR AUTENTICIDAD",
		FontSize: 8, Bold: true, Align: AlignCenter, Color: tintaOscura})

	// Square QR area; the QR source is an opaque external reference.
	qr := Element{Kind: KindImage, X: half/2 - 42.5, Y: 20, W: 85, H: 85, ImageRef: d.QRCodeURL}
	l.add(qr)

	// Emergency block, one compact line each, with empty-value fallbacks.
	lines := []string{
		"MIEMBRO DESDE: " + fallback(d.MiembroDesde, "N/A"),
		"EMERGENCIAS: " + fallback(d.EmergencyContact, "N/A"),
		"PARENTESCO: " + fallback(d.Parentesco, "N/A"),
		"TELÉFONO: " + fallback(d.Telefono, "N/A"),
		"TIPO DE SANGRE: " + d.TipoSangre,
		"ALERGIAS: " + fallback(d.Alergias, "NINGUNA"),
		"CURP O NSS: " + fallback(d.CURP, "No especificado"),
	}
	y := 112.0
	for _, line := range lines {
		l.add(Element{Kind: KindText, X: 6, Y: y, W: half - 12, H: 9, Text: line,
			FontSize: 7, Bold: true, Truncate: true, Align: AlignLeft, Color: tintaOscura})
		y += 10
	}

	// Signature and seal.
	l.add(Element{Kind: KindImage, X: half/2 - 60, Y: 188, W: 120, H: 45, ImageRef: AssetSeal})

	// ── Right half ──
	// Vertical divider and the horizontal one between vision and mission.
	l.add(Element{Kind: KindRect, X: half, Y: 0, W: 5, H: CanvasH, Color: rojoInstitucional})
	l.add(Element{Kind: KindRect, X: half, Y: CanvasH/2 - 2.5, W: half, H: 5, Color: rojoInstitucional})

	l.add(Element{Kind: KindText, X: half + 10, Y: 4, W: half - 15, H: 12, Text: "VISIÓN",
		FontSize: 11, Bold: true, Align: AlignLeft, Color: rojoInstitucional})
	l.add(Element{Kind: KindParagraph, X: half + 10, Y: 18, W: half - 18, H: CanvasH/2 - 22,
		Text: textoVision, FontSize: 6, Color: tintaOscura})

	l.add(Element{Kind: KindText, X: half + 10, Y: CanvasH/2 + 5, W: half - 15, H: 12, Text: "MISIÓN",
		FontSize: 11, Bold: true, Align: AlignLeft, Color: rojoInstitucional})
	l.add(Element{Kind: KindParagraph, X: half + 10, Y: CanvasH/2 + 19, W: half - 18, H: CanvasH/2 - 24,
		Text: textoMision, FontSize: 6, Color: tintaOscura})

	return l
}
