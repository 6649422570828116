package service

import (
	"github.com/SistemasCRMC/credenciales/internal/card"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/model"
)

// credencialResponse maps a row to its wire shape.
func credencialResponse(c *model.Credencial) dto.CredencialResponse {
	return dto.CredencialResponse{
		ID:                 c.ID,
		NombreCompleto:     c.NombreCompleto,
		Area:               c.Area,
		ColorArea:          c.ColorArea,
		Vigencia:           c.Vigencia,
		ContactoEmergencia: c.ContactoEmergencia,
		Parentesco:         c.Parentesco,
		TelefonoEmergencia: c.TelefonoEmergencia,
		TipoSangre:         c.TipoSangre,
		Alergias:           c.Alergias,
		CURP:               c.CURP,
		MiembroDesde:       c.MiembroDesde,
		FotografiaURL:      c.FotografiaURL,
		QRCodigoURL:        c.QRCodigoURL,
		Estado:             c.Estado,
	}
}

// credencialSnapshot maps a row to the card engine's wire shape, used for
// rendering and validation verdicts.
func credencialSnapshot(c *model.Credencial) card.BackendCredencial {
	return card.BackendCredencial{
		ID:                 c.ID,
		NombreCompleto:     c.NombreCompleto,
		Area:               c.Area,
		ColorArea:          c.ColorArea,
		Vigencia:           c.Vigencia,
		ContactoEmergencia: deref(c.ContactoEmergencia),
		Parentesco:         deref(c.Parentesco),
		TelefonoEmergencia: deref(c.TelefonoEmergencia),
		TipoSangre:         deref(c.TipoSangre),
		Alergias:           deref(c.Alergias),
		CURP:               deref(c.CURP),
		MiembroDesde:       deref(c.MiembroDesde),
		FotografiaURL:      deref(c.FotografiaURL),
		QRCodigoURL:        deref(c.QRCodigoURL),
		Estado:             c.Estado,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
