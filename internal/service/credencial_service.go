package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/card"
	"github.com/SistemasCRMC/credenciales/internal/config"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/infra"
	"github.com/SistemasCRMC/credenciales/internal/model"
	"github.com/SistemasCRMC/credenciales/internal/repository"
	"github.com/SistemasCRMC/credenciales/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrCredencialNoEncontrada = errors.New("credencial no encontrada")

// validacionCacheTTL bounds how stale the public validation page may be.
const validacionCacheTTL = 60 * time.Second

// CredencialService defines the business logic contract for credentials.
type CredencialService interface {
	Crear(ctx context.Context, req dto.GuardarCredencialRequest) (*dto.GuardarCredencialResponse, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarCredencialRequest) (*dto.GuardarCredencialResponse, error)
	Buscar(ctx context.Context, filter dto.CredencialFilter) (*dto.CredencialListResponse, error)
	ObtenerPorID(ctx context.Context, id int) (*dto.CredencialResponse, error)
	Validar(ctx context.Context, id int) (*dto.ValidacionResponse, error)
	Importar(ctx context.Context, r io.Reader, usuarioID int) (*dto.ImportarCredencialesResponse, error)
	Deshabilitar(ctx context.Context, id, usuarioID int) error
	Habilitar(ctx context.Context, id, usuarioID int) error
}

type credencialService struct {
	repo       repository.CredencialRepository
	bitacora   repository.BitacoraRepository
	fotos      *infra.FotoStore
	dispatcher *worker.Dispatcher
	rdb        *redis.Client
	cfg        *config.Config
}

func NewCredencialService(
	repo repository.CredencialRepository,
	bitacora repository.BitacoraRepository,
	fotos *infra.FotoStore,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
	cfg *config.Config,
) CredencialService {
	return &credencialService{
		repo:       repo,
		bitacora:   bitacora,
		fotos:      fotos,
		dispatcher: dispatcher,
		rdb:        rdb,
		cfg:        cfg,
	}
}

// Crear issues a new credential: persists the row and its audit entry in one
// transaction, then generates the QR pointing at the public validation page
// and queues the notification email.
func (s *credencialService) Crear(ctx context.Context, req dto.GuardarCredencialRequest) (*dto.GuardarCredencialResponse, error) {
	cred := s.fromRequest(req)
	cred.Estado = string(card.EstadoEmitida)

	if req.FotografiaBase64 != nil && *req.FotografiaBase64 != "" {
		url, err := s.fotos.Save(*req.FotografiaBase64)
		if err != nil {
			return nil, err
		}
		cred.FotografiaURL = &url
	} else if req.FotografiaURLCurrent != nil && *req.FotografiaURLCurrent != "" {
		cred.FotografiaURL = req.FotografiaURLCurrent
	}

	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		return s.bitacora.CreateTx(tx, &model.Bitacora{
			Fecha:        time.Now(),
			Accion:       model.AccionEmision,
			CredencialID: cred.ID,
			UsuarioID:    cred.UsuarioID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.attachQR(ctx, cred)
	s.notificar(ctx, cred, req.Correo, "emision")

	return &dto.GuardarCredencialResponse{
		CredentialID:  cred.ID,
		FotografiaURL: cred.FotografiaURL,
		QRCodigoURL:   cred.QRCodigoURL,
	}, nil
}

// Actualizar renews a credential. A disabled credential keeps its estado: the
// renewal updates the data but re-enabling is an explicit separate action.
func (s *credencialService) Actualizar(ctx context.Context, id int, req dto.GuardarCredencialRequest) (*dto.GuardarCredencialResponse, error) {
	cred, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCredencialNoEncontrada
	}

	nuevo := s.fromRequest(req)
	cred.NombreCompleto = nuevo.NombreCompleto
	cred.Area = nuevo.Area
	cred.ColorArea = nuevo.ColorArea
	cred.Vigencia = nuevo.Vigencia
	cred.ContactoEmergencia = nuevo.ContactoEmergencia
	cred.Parentesco = nuevo.Parentesco
	cred.TelefonoEmergencia = nuevo.TelefonoEmergencia
	cred.TipoSangre = nuevo.TipoSangre
	cred.Alergias = nuevo.Alergias
	cred.CURP = nuevo.CURP
	cred.MiembroDesde = nuevo.MiembroDesde
	if cred.Estado != string(card.EstadoDeshabilitada) {
		cred.Estado = string(card.EstadoRenovada)
	}

	if req.FotografiaBase64 != nil && *req.FotografiaBase64 != "" {
		url, err := s.fotos.Save(*req.FotografiaBase64)
		if err != nil {
			return nil, err
		}
		if cred.FotografiaURL != nil {
			if err := s.fotos.Remove(*cred.FotografiaURL); err != nil {
				log.Warn().Err(err).Str("foto", *cred.FotografiaURL).Msg("no se pudo borrar la foto anterior")
			}
		}
		cred.FotografiaURL = &url
	} else if req.FotografiaURLCurrent == nil || *req.FotografiaURLCurrent == "" {
		cred.FotografiaURL = nil
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cred).Error; err != nil {
			return err
		}
		return s.bitacora.CreateTx(tx, &model.Bitacora{
			Fecha:        time.Now(),
			Accion:       model.AccionRenovacion,
			CredencialID: cred.ID,
			UsuarioID:    req.UsuarioID,
		})
	})
	if err != nil {
		return nil, err
	}

	if cred.QRCodigoURL == nil {
		s.attachQR(ctx, cred)
	}
	s.invalidarCache(ctx, cred.ID)
	s.notificar(ctx, cred, req.Correo, "renovacion")

	return &dto.GuardarCredencialResponse{
		CredentialID:  cred.ID,
		FotografiaURL: cred.FotografiaURL,
		QRCodigoURL:   cred.QRCodigoURL,
	}, nil
}

func (s *credencialService) Buscar(ctx context.Context, filter dto.CredencialFilter) (*dto.CredencialListResponse, error) {
	credenciales, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CredencialResponse, len(credenciales))
	for i := range credenciales {
		data[i] = credencialResponse(&credenciales[i])
	}
	return &dto.CredencialListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *credencialService) ObtenerPorID(ctx context.Context, id int) (*dto.CredencialResponse, error) {
	cred, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCredencialNoEncontrada
	}
	resp := credencialResponse(cred)
	return &resp, nil
}

// Validar backs the public page the printed QR points at. Responses are
// cached briefly in redis: validation bursts (an event checking everyone at
// the door) should not hit Postgres per scan.
func (s *credencialService) Validar(ctx context.Context, id int) (*dto.ValidacionResponse, error) {
	key := validacionKey(id)
	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var cached dto.ValidacionResponse
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	cred, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCredencialNoEncontrada
	}

	data := card.FromBackend(credencialSnapshot(cred))
	now := time.Now()
	resp := &dto.ValidacionResponse{
		Credencial: credencialResponse(cred),
		Valida:     data.Validez(now) == card.Valida,
		Estatus:    data.ValidezLabel(now),
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.rdb.Set(ctx, key, encoded, validacionCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Int("credencial_id", id).Msg("no se pudo cachear la validación")
		}
	}
	return resp, nil
}

func (s *credencialService) Deshabilitar(ctx context.Context, id, usuarioID int) error {
	return s.cambiarEstado(ctx, id, usuarioID, string(card.EstadoDeshabilitada), model.AccionDeshabilitacion)
}

// Habilitar returns a disabled credential to circulation. The pre-disable
// estado is not stored, so it comes back as "emitida"; the bitácora keeps
// the full history.
func (s *credencialService) Habilitar(ctx context.Context, id, usuarioID int) error {
	return s.cambiarEstado(ctx, id, usuarioID, string(card.EstadoEmitida), model.AccionHabilitacion)
}

func (s *credencialService) cambiarEstado(ctx context.Context, id, usuarioID int, estado, accion string) error {
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Credencial{}).Where("id = ?", id).Update("estado", estado)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCredencialNoEncontrada
		}
		return s.bitacora.CreateTx(tx, &model.Bitacora{
			Fecha:        time.Now(),
			Accion:       accion,
			CredencialID: id,
			UsuarioID:    usuarioID,
		})
	})
	if err != nil {
		return err
	}
	s.invalidarCache(ctx, id)
	return nil
}

// fromRequest re-applies the card engine's input filters. The designer already
// filters per keystroke; filtering again here keeps direct API clients to the
// same rules.
func (s *credencialService) fromRequest(req dto.GuardarCredencialRequest) *model.Credencial {
	return &model.Credencial{
		NombreCompleto:     card.Truncar(card.FiltrarLetras(req.NombreCompleto), card.MaxLenNombre),
		Area:               card.Truncar(card.FiltrarLibre(req.Area), card.MaxLenArea),
		ColorArea:          req.ColorArea,
		Vigencia:           card.Truncar(card.FiltrarDigitos(req.Vigencia), card.MaxLenAnio),
		ContactoEmergencia: filtrarPtr(req.ContactoEmergencia, card.FiltrarLetras, card.MaxLenContacto),
		Parentesco:         filtrarPtr(req.Parentesco, card.FiltrarLetras, 0),
		TelefonoEmergencia: filtrarPtr(req.TelefonoEmergencia, card.FiltrarDigitos, card.MaxLenTelefono),
		TipoSangre:         req.TipoSangre,
		Alergias:           filtrarPtr(req.Alergias, card.FiltrarLetras, card.MaxLenAlergias),
		CURP:               filtrarPtr(req.CURP, card.FiltrarLibre, card.MaxLenCURP),
		MiembroDesde:       filtrarPtr(req.MiembroDesde, card.FiltrarDigitos, card.MaxLenAnio),
		UsuarioID:          req.UsuarioID,
	}
}

// attachQR generates the QR image after the id is known and stores its path.
// A QR failure is logged, not fatal: the credential exists and the QR can be
// regenerated on the next renewal.
func (s *credencialService) attachQR(ctx context.Context, cred *model.Credencial) {
	validationURL := fmt.Sprintf("%s/validar/%d", s.cfg.Domain, cred.ID)
	qrURL, err := infra.GenerateQR(validationURL, cred.ID, s.cfg.StoragePath)
	if err != nil {
		log.Error().Err(err).Int("credencial_id", cred.ID).Msg("no se pudo generar el QR")
		return
	}
	cred.QRCodigoURL = &qrURL
	if err := s.repo.Update(ctx, cred); err != nil {
		log.Error().Err(err).Int("credencial_id", cred.ID).Msg("no se pudo guardar la URL del QR")
	}
}

func (s *credencialService) notificar(ctx context.Context, cred *model.Credencial, correo *string, accion string) {
	if s.dispatcher == nil || correo == nil || *correo == "" {
		return
	}
	payload := worker.NotificacionJobPayload{
		ToEmail:    *correo,
		Accion:     accion,
		Credencial: credencialSnapshot(cred),
	}
	if err := s.dispatcher.EnqueueNotificacion(ctx, payload); err != nil {
		log.Error().Err(err).Int("credencial_id", cred.ID).Msg("no se pudo encolar la notificación")
	}
}

func (s *credencialService) invalidarCache(ctx context.Context, id int) {
	if err := s.rdb.Del(ctx, validacionKey(id)).Err(); err != nil {
		log.Warn().Err(err).Int("credencial_id", id).Msg("no se pudo invalidar la caché de validación")
	}
}

func validacionKey(id int) string { return fmt.Sprintf("credencial:%d:validacion", id) }

func filtrarPtr(s *string, filtro func(string) string, max int) *string {
	if s == nil || *s == "" {
		return nil
	}
	out := filtro(*s)
	if max > 0 {
		out = card.Truncar(out, max)
	}
	if out == "" {
		return nil
	}
	return &out
}
