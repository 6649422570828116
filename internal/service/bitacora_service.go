package service

import (
	"context"
	"math"

	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/repository"
)

type BitacoraService interface {
	Listar(ctx context.Context, filter dto.BitacoraFilter) (*dto.BitacoraListResponse, error)
}

type bitacoraService struct {
	repo repository.BitacoraRepository
}

func NewBitacoraService(repo repository.BitacoraRepository) BitacoraService {
	return &bitacoraService{repo: repo}
}

func (s *bitacoraService) Listar(ctx context.Context, filter dto.BitacoraFilter) (*dto.BitacoraListResponse, error) {
	entradas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.BitacoraEntryResponse, len(entradas))
	for i, e := range entradas {
		entry := dto.BitacoraEntryResponse{
			ID:           e.ID,
			Fecha:        e.Fecha,
			Accion:       e.Accion,
			CredencialID: e.CredencialID,
		}
		if e.Credencial != nil {
			entry.NombreCompleto = e.Credencial.NombreCompleto
			entry.EstadoActual = e.Credencial.Estado
		}
		if e.Usuario != nil {
			entry.Usuario = e.Usuario.Nombre
		}
		data[i] = entry
	}

	return &dto.BitacoraListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
