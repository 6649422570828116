package card

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// Side is the face the preview currently shows. It is a pure view toggle and
// never affects the draft.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// Field names accepted by UpdateField/ClearField.
type Field string

const (
	FieldName             Field = "name"
	FieldFoto             Field = "photo"
	FieldArea             Field = "area"
	FieldPosition         Field = "position"
	FieldVigencia         Field = "vigencia"
	FieldEmergencyContact Field = "emergencyContact"
	FieldParentesco       Field = "parentesco"
	FieldTelefono         Field = "telefono"
	FieldTipoSangre       Field = "tipoSangre"
	FieldAlergias         Field = "alergias"
	FieldCURP             Field = "curp"
	FieldMiembroDesde     Field = "miembroDesde"
)

// Persistence is the remote API contract the designer saves through.
type Persistence interface {
	Crear(ctx context.Context, p SavePayload) (*SaveResult, error)
	Actualizar(ctx context.Context, id int, p SavePayload) (*SaveResult, error)
	Buscar(ctx context.Context, term string) ([]BackendCredencial, error)
	ObtenerPorID(ctx context.Context, id int) (*BackendCredencial, error)
}

// Actor is the authenticated identity on whose behalf saves are made.
type Actor struct {
	ID     int
	Correo string
}

// Updater is the external persistence function supplied by the renewal flow.
// When it returns a record, that record replaces the draft.
type Updater func(ctx context.Context, d CredentialData) (*CredentialData, error)

// DesignerConfig carries the designer's collaborators.
type DesignerConfig struct {
	API     Persistence
	Areas   *Registry
	Actor   *Actor
	Updater Updater
	// Initial, when set, seeds the draft (renewal pre-fill) instead of the
	// empty default record.
	Initial *CredentialData
}

// Designer owns the mutable draft record and coordinates field edits, saving
// and printing. It is single-session: one designer per editing flow, used
// from one goroutine, with an in-flight guard instead of cancellation.
type Designer struct {
	api     Persistence
	areas   *Registry
	actor   *Actor
	updater Updater

	draft CredentialData
	side  Side
	saved []CredentialData
	busy  bool
}

func NewDesigner(cfg DesignerConfig) *Designer {
	d := &Designer{
		api:     cfg.API,
		areas:   cfg.Areas,
		actor:   cfg.Actor,
		updater: cfg.Updater,
		side:    SideFront,
	}
	if cfg.Initial != nil {
		d.draft = *cfg.Initial
	} else {
		d.draft = Empty(cfg.Areas)
	}
	return d
}

func (d *Designer) Draft() CredentialData   { return d.draft }
func (d *Designer) Side() Side              { return d.side }
func (d *Designer) SetSide(s Side)          { d.side = s }
func (d *Designer) Saved() []CredentialData { return d.saved }

// UpdateField applies the field's input filter and assigns the value. An area
// update re-resolves the derived color in the same step so there is never a
// stale-color window.
func (d *Designer) UpdateField(f Field, value string) {
	switch f {
	case FieldName:
		d.draft.Name = Truncar(FiltrarLetras(value), MaxLenNombre)
	case FieldFoto:
		d.draft.Foto = ParseFoto(value)
	case FieldArea:
		d.draft.Area = value
		d.draft.AreaColor = d.areas.Lookup(value)
	case FieldPosition:
		d.draft.Position = value
	case FieldVigencia:
		d.draft.Vigencia = Truncar(FiltrarDigitos(value), MaxLenAnio)
	case FieldEmergencyContact:
		d.draft.EmergencyContact = Truncar(FiltrarLetras(value), MaxLenContacto)
	case FieldParentesco:
		d.draft.Parentesco = FiltrarLetras(value)
	case FieldTelefono:
		d.draft.Telefono = Truncar(FiltrarDigitos(value), MaxLenTelefono)
	case FieldTipoSangre:
		d.draft.TipoSangre = value
	case FieldAlergias:
		d.draft.Alergias = Truncar(FiltrarLetras(value), MaxLenAlergias)
	case FieldCURP:
		d.draft.CURP = Truncar(FiltrarLibre(value), MaxLenCURP)
	case FieldMiembroDesde:
		d.draft.MiembroDesde = Truncar(FiltrarDigitos(value), MaxLenAnio)
	}
}

// AddArea registers a custom area and selects it, forcing the color through
// in the same step even though Lookup would now resolve it anyway.
func (d *Designer) AddArea(name, color string) bool {
	normalized := strings.TrimSpace(Truncar(FiltrarLetras(name), MaxLenArea))
	if !d.areas.Add(normalized, color) {
		return false
	}
	d.draft.Area = normalized
	d.draft.AreaColor = color
	return true
}

// ClearField resets a field to its type-appropriate empty value.
func (d *Designer) ClearField(f Field) {
	switch f {
	case FieldFoto:
		d.draft.Foto = PlaceholderFoto()
	default:
		d.UpdateField(f, "")
	}
}

// ClearID resets the persisted identity, turning the draft back into a
// never-saved record.
func (d *Designer) ClearID() { d.draft.CredentialID = nil }

// Save persists the draft. With an updater (renewal) it delegates and keeps
// the returned record displayed; without one (fresh issuance) it creates
// through the API, merges the server-assigned id, photo URL and QR reference,
// records the result in the session list, and resets the draft — one
// successful create ends that editing session.
func (d *Designer) Save(ctx context.Context) (*CredentialData, error) {
	if d.busy {
		return nil, ErrOcupado
	}
	d.busy = true
	defer func() { d.busy = false }()

	if d.updater != nil {
		result, err := d.updater(ctx, d.draft)
		if err != nil {
			return nil, err
		}
		if result != nil {
			d.draft = *result
		}
		saved := d.draft
		return &saved, nil
	}

	if d.actor == nil {
		return nil, ErrNoAutenticado
	}

	payload := ToBackend(d.draft, d.actor.ID, d.actor.Correo)
	res, err := d.api.Crear(ctx, payload)
	if err != nil {
		return nil, err
	}

	cred := d.draft
	id := res.CredentialID
	cred.CredentialID = &id
	if res.FotografiaURL != "" {
		cred.Foto = URLFoto(res.FotografiaURL)
	}
	cred.QRCodeURL = res.QRCodigoURL
	d.saved = append(d.saved, cred)
	d.draft = Empty(d.areas)

	log.Info().Int("credencial_id", id).Msg("designer: credencial creada, formulario reiniciado")
	return &cred, nil
}

// Print persists first — the printed QR is only meaningful for a saved
// record — then renders both faces of the saved record and composes the
// two-page document into w. A failed save aborts before any rendering.
func (d *Designer) Print(ctx context.Context, w io.Writer, resolver ImageResolver) error {
	saved, err := d.Save(ctx)
	if err != nil {
		return err
	}
	front := RenderFront(*saved)
	back := RenderBack(*saved)
	return NewCompositor(resolver).Compose(w, front, back)
}
