// Package card implements the credential card engine: the canonical in-memory
// record, its adapters to and from the backend wire shape, the area registry,
// the fixed-layout face renderers and the print compositor.
package card

import (
	"strconv"
	"time"
)

// Estado is the lifecycle state of a persisted credential.
type Estado string

const (
	EstadoEmitida       Estado = "emitida"
	EstadoRenovada      Estado = "renovada"
	EstadoDeshabilitada Estado = "deshabilitada"
)

// Fixed defaults shared by the empty record and the backend adapter.
const (
	DefaultArea       = "SERVICIOS MÉDICOS"
	DefaultVigencia   = "2026"
	DefaultTipoSangre = "O+"
	DefaultDelegacion = "DELEGACION CANCUN"
)

// CredentialData is the canonical in-memory shape of a credential while it is
// being designed, previewed or printed. Field names mirror the emission form.
type CredentialData struct {
	Name             string
	Foto             Foto
	Area             string
	// AreaColor is derived: it always tracks Registry.Lookup(Area). It is only
	// set directly when a brand-new custom area is registered.
	AreaColor        string
	Position         string
	Delegation       string
	Vigencia         string
	EmergencyContact string
	Parentesco       string
	Telefono         string
	TipoSangre       string
	Alergias         string
	CURP             string
	MiembroDesde     string
	ShowPrinciples   bool
	// CredentialID is nil until the record has been persisted once.
	CredentialID *int
	QRCodeURL    string
	Estado       Estado
}

// Empty returns a fresh record with every default applied. The area color is
// resolved through the registry so custom areas behave like built-ins.
func Empty(areas *Registry) CredentialData {
	return CredentialData{
		Foto:           PlaceholderFoto(),
		Area:           DefaultArea,
		AreaColor:      areas.Lookup(DefaultArea),
		Delegation:     DefaultDelegacion,
		Vigencia:       DefaultVigencia,
		TipoSangre:     DefaultTipoSangre,
		ShowPrinciples: true,
		Estado:         EstadoEmitida,
	}
}

// Completeness reports which of the three progress indicators are satisfied.
// It drives the UI progress widget only; an incomplete record can still be saved.
type Completeness struct {
	Nombre      bool
	Fotografia  bool
	Emergencias bool
}

func (d CredentialData) Completeness() Completeness {
	return Completeness{
		Nombre:      d.Name != "",
		Fotografia:  !d.Foto.IsPlaceholder(),
		Emergencias: d.EmergencyContact != "",
	}
}

// FormatCredentialID renders the front-face ID label: nil is "N/A" and
// single-digit IDs are zero-padded to two places.
func FormatCredentialID(id *int) string {
	if id == nil {
		return "N/A"
	}
	if *id < 10 {
		return "0" + strconv.Itoa(*id)
	}
	return strconv.Itoa(*id)
}

// Validez is the public-validation verdict for a fetched credential.
type Validez int

const (
	Valida Validez = iota
	Vencida
	Deshabilitada
)

// Validez derives the validation verdict. A disabled credential is invalid no
// matter how far in the future its vigencia is, and an expired year overrides
// the stored "emitida"/"renovada" label.
func (d CredentialData) Validez(now time.Time) Validez {
	if d.Estado == EstadoDeshabilitada {
		return Deshabilitada
	}
	if year, err := strconv.Atoi(d.Vigencia); err == nil && year < now.Year() {
		return Vencida
	}
	return Valida
}

// ValidezLabel returns the Spanish status label shown on the validation page.
func (d CredentialData) ValidezLabel(now time.Time) string {
	switch d.Validez(now) {
	case Deshabilitada:
		return "Deshabilitada"
	case Vencida:
		return "Vencida"
	default:
		if d.Estado == EstadoRenovada {
			return "Renovada"
		}
		return "Vigente"
	}
}
