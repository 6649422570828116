package card

// Wire shapes for the credentials API. The JSON field names are the backend
// contract; FromBackend/ToBackend are the only places the two vocabularies
// (form fields vs. backend columns) meet.

// BackendCredencial is a credential as returned by GET /credentials/:id and
// GET /credentials/search. Zero values mean the backend omitted the field.
type BackendCredencial struct {
	ID                 int    `json:"id"`
	NombreCompleto     string `json:"nombre_completo"`
	Area               string `json:"area"`
	ColorArea          string `json:"color_area"`
	Vigencia           string `json:"vigencia"`
	ContactoEmergencia string `json:"contacto_emergencia"`
	Parentesco         string `json:"parentesco"`
	TelefonoEmergencia string `json:"telefono_emergencia"`
	TipoSangre         string `json:"tipo_sangre"`
	Alergias           string `json:"alergias"`
	CURP               string `json:"curp"`
	MiembroDesde       string `json:"miembro_desde"`
	FotografiaURL      string `json:"fotografia_url"`
	QRCodigoURL        string `json:"qr_codigo_url"`
	Estado             string `json:"estado"`
}

// SavePayload is the body of POST /credentials and PUT /credentials/:id.
// Exactly one of FotografiaBase64 / FotografiaURLCurrent is set, or both are
// null when the photo is still the placeholder.
type SavePayload struct {
	NombreCompleto       string  `json:"nombre_completo"`
	Correo               *string `json:"correo"`
	Area                 string  `json:"area"`
	ColorArea            string  `json:"color_area"`
	Vigencia             string  `json:"vigencia"`
	ContactoEmergencia   *string `json:"contacto_emergencia"`
	Parentesco           *string `json:"parentesco"`
	TelefonoEmergencia   *string `json:"telefono_emergencia"`
	TipoSangre           *string `json:"tipo_sangre"`
	Alergias             *string `json:"alergias"`
	CURP                 *string `json:"curp"`
	MiembroDesde         *string `json:"miembro_desde"`
	FotografiaBase64     *string `json:"fotografia_base64"`
	FotografiaURLCurrent *string `json:"fotografia_url_current"`
	UsuarioID            int     `json:"usuario_id"`
}

// SaveResult is the backend's answer to a successful create or update.
type SaveResult struct {
	CredentialID  int    `json:"credentialId"`
	FotografiaURL string `json:"fotografia_url"`
	QRCodigoURL   string `json:"qr_codigo_url"`
}

// FromBackend adapts a backend record into the canonical form shape. It is
// total: absent backend fields degrade to the documented defaults, never to
// an error. The backend's sanitization is forward-going only, so values are
// taken as stored.
func FromBackend(b BackendCredencial) CredentialData {
	d := CredentialData{
		Name:             b.NombreCompleto,
		Foto:             ParseFoto(b.FotografiaURL),
		Area:             orDefault(b.Area, DefaultArea),
		AreaColor:        orDefault(b.ColorArea, DefaultAreaColor),
		Delegation:       DefaultDelegacion,
		Vigencia:         orDefault(b.Vigencia, DefaultVigencia),
		EmergencyContact: b.ContactoEmergencia,
		Parentesco:       b.Parentesco,
		Telefono:         b.TelefonoEmergencia,
		TipoSangre:       orDefault(b.TipoSangre, DefaultTipoSangre),
		Alergias:         b.Alergias,
		CURP:             b.CURP,
		MiembroDesde:     b.MiembroDesde,
		ShowPrinciples:   true,
		QRCodeURL:        b.QRCodigoURL,
		Estado:           Estado(orDefault(b.Estado, string(EstadoEmitida))),
	}
	if b.ID != 0 {
		id := b.ID
		d.CredentialID = &id
	}
	return d
}

// ToBackend builds the persistence payload for a record on behalf of an actor.
// The photo tri-state is encoded in exactly one field (or neither).
func ToBackend(d CredentialData, usuarioID int, correo string) SavePayload {
	p := SavePayload{
		NombreCompleto:     d.Name,
		Correo:             nilIfEmpty(correo),
		Area:               d.Area,
		ColorArea:          d.AreaColor,
		Vigencia:           d.Vigencia,
		ContactoEmergencia: nilIfEmpty(d.EmergencyContact),
		Parentesco:         nilIfEmpty(d.Parentesco),
		TelefonoEmergencia: nilIfEmpty(d.Telefono),
		TipoSangre:         nilIfEmpty(d.TipoSangre),
		Alergias:           nilIfEmpty(d.Alergias),
		CURP:               nilIfEmpty(d.CURP),
		MiembroDesde:       nilIfEmpty(d.MiembroDesde),
		UsuarioID:          usuarioID,
	}
	if data, ok := d.Foto.Base64(); ok {
		p.FotografiaBase64 = &data
	} else if url, ok := d.Foto.URL(); ok {
		p.FotografiaURLCurrent = &url
	}
	return p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
