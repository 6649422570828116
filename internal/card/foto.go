package card

import "strings"

// PlaceholderRef is the sentinel reference used when no photo has been chosen.
// It matches the placeholder asset path the emission form has always used, so
// records round-tripped through older backends keep working.
const PlaceholderRef = "/placeholder.svg?height=200&width=200"

type fotoKind int

const (
	fotoPlaceholder fotoKind = iota
	fotoURL
	fotoBase64
)

// Foto models the three photo states as a tagged union instead of sentinel
// string comparison: no photo yet, an already-uploaded remote image, or an
// inline base64 payload awaiting upload.
type Foto struct {
	kind fotoKind
	ref  string
}

func PlaceholderFoto() Foto          { return Foto{kind: fotoPlaceholder} }
func URLFoto(url string) Foto        { return Foto{kind: fotoURL, ref: url} }
func Base64Foto(dataURI string) Foto { return Foto{kind: fotoBase64, ref: dataURI} }

// ParseFoto classifies an arbitrary photo reference the way the form does:
// data URIs are inline payloads, the placeholder sentinel (or emptiness) is
// "no photo", anything else is treated as a remote URL.
func ParseFoto(ref string) Foto {
	switch {
	case ref == "" || ref == PlaceholderRef:
		return PlaceholderFoto()
	case strings.HasPrefix(ref, "data:"):
		return Base64Foto(ref)
	default:
		return URLFoto(ref)
	}
}

func (f Foto) IsPlaceholder() bool { return f.kind == fotoPlaceholder }

// URL returns the remote reference and true when the photo is an uploaded image.
func (f Foto) URL() (string, bool) { return f.ref, f.kind == fotoURL }

// Base64 returns the inline data URI and true when the photo awaits upload.
func (f Foto) Base64() (string, bool) { return f.ref, f.kind == fotoBase64 }

// Ref returns the displayable reference for any state; the placeholder state
// yields PlaceholderRef so renderers always have something to show.
func (f Foto) Ref() string {
	if f.kind == fotoPlaceholder {
		return PlaceholderRef
	}
	return f.ref
}
