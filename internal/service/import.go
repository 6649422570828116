package service

// import.go
// Bulk CSV emission. The file comes from the delegation's member spreadsheet,
// so columns are located by keyword in the header row rather than by a fixed
// order, and every value goes through the same input filters as the form.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/SistemasCRMC/credenciales/internal/card"
	"github.com/SistemasCRMC/credenciales/internal/dto"
)

// columnAliases maps a destination field to the header keywords that select
// it. The leftmost matching column wins.
var columnAliases = map[string][]string{
	"nombre":     {"nombre"},
	"contacto":   {"contacto"},
	"parentesco": {"parentesco"},
	"telefono":   {"telefono", "teléfono"},
	"sangre":     {"sangre"},
	"alergias":   {"alergia"},
	"curp":       {"curp"},
	"miembro":    {"miembro"},
	"area":       {"area", "área"},
	"vigencia":   {"vigencia"},
	"correo":     {"correo", "email"},
}

// ImportRow is one usable CSV row: the save request it maps to plus its
// 1-based position in the file (the header is row 1).
type ImportRow struct {
	Fila int
	Req  dto.GuardarCredencialRequest
}

// ParsearCSVCredenciales reads the spreadsheet and produces one save request
// per usable row. Rows without a name are reported, not imported; unknown
// columns are ignored. Area and vigencia fall back to the card defaults when
// the file has no such column.
func ParsearCSVCredenciales(r io.Reader) ([]ImportRow, []dto.ImportRowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("importar: leer encabezado: %w", err)
	}

	cols := make(map[string]int, len(columnAliases))
	for campo, aliases := range columnAliases {
		for i, h := range header {
			lower := strings.ToLower(strings.TrimSpace(h))
			for _, alias := range aliases {
				if strings.Contains(lower, alias) {
					if _, taken := cols[campo]; !taken {
						cols[campo] = i
					}
				}
			}
		}
	}
	if _, ok := cols["nombre"]; !ok {
		return nil, nil, fmt.Errorf("importar: el archivo no tiene columna de nombre")
	}

	areas := card.NewRegistry(card.MemStore{})

	var rows []ImportRow
	var errores []dto.ImportRowError
	fila := 1 // header
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		fila++
		if err != nil {
			errores = append(errores, dto.ImportRowError{Fila: fila, Detail: "fila ilegible"})
			continue
		}

		get := func(campo string) string {
			i, ok := cols[campo]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		nombre := card.Truncar(card.FiltrarLetras(get("nombre")), card.MaxLenNombre)
		if nombre == "" {
			errores = append(errores, dto.ImportRowError{Fila: fila, Detail: "sin nombre"})
			continue
		}

		area := card.Truncar(card.FiltrarLibre(get("area")), card.MaxLenArea)
		if area == "" {
			area = card.DefaultArea
		}
		vigencia := card.Truncar(card.FiltrarDigitos(get("vigencia")), card.MaxLenAnio)
		if len(vigencia) != 4 {
			vigencia = card.DefaultVigencia
		}

		req := dto.GuardarCredencialRequest{
			NombreCompleto:     nombre,
			Area:               area,
			ColorArea:          areas.Lookup(area),
			Vigencia:           vigencia,
			ContactoEmergencia: csvPtr(card.Truncar(card.FiltrarLetras(get("contacto")), card.MaxLenContacto)),
			Parentesco:         csvPtr(card.FiltrarLetras(get("parentesco"))),
			TelefonoEmergencia: csvPtr(card.Truncar(card.FiltrarDigitos(get("telefono")), card.MaxLenTelefono)),
			TipoSangre:         csvPtr(strings.ToUpper(get("sangre"))),
			Alergias:           csvPtr(card.Truncar(card.FiltrarLetras(get("alergias")), card.MaxLenAlergias)),
			CURP:               csvPtr(card.Truncar(card.FiltrarLibre(get("curp")), card.MaxLenCURP)),
			MiembroDesde:       csvPtr(card.Truncar(card.FiltrarDigitos(get("miembro")), card.MaxLenAnio)),
			Correo:             csvPtr(get("correo")),
		}
		rows = append(rows, ImportRow{Fila: fila, Req: req})
	}

	return rows, errores, nil
}

// Importar issues one credential per parsed row. Row-level failures (parse or
// persistence) are collected so one bad row does not abort the batch.
func (s *credencialService) Importar(ctx context.Context, r io.Reader, usuarioID int) (*dto.ImportarCredencialesResponse, error) {
	rows, errores, err := ParsearCSVCredenciales(r)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportarCredencialesResponse{Errores: errores}
	for _, row := range rows {
		row.Req.UsuarioID = usuarioID
		if _, err := s.Crear(ctx, row.Req); err != nil {
			resp.Errores = append(resp.Errores, dto.ImportRowError{Fila: row.Fila, Detail: err.Error()})
			continue
		}
		resp.Importadas++
	}
	return resp, nil
}

func csvPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
