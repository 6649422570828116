package worker

// notificacion_worker.go
// Processes credential notification jobs from QueueNotificaciones: renders
// the two-page print document for the credential and emails it to the member.
// SMTP goes through the circuit breaker so a downed relay trips fast instead
// of hanging every worker.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/SistemasCRMC/credenciales/internal/card"
	"github.com/SistemasCRMC/credenciales/internal/infra"

	"github.com/rs/zerolog/log"
)

// NotificacionJobPayload carries a full credential snapshot so the worker can
// render without a database round-trip.
type NotificacionJobPayload struct {
	ToEmail    string                 `json:"to_email"`
	Accion     string                 `json:"accion"` // emision | renovacion
	Credencial card.BackendCredencial `json:"credencial"`
}

// NotificacionWorker renders and emails credentials.
type NotificacionWorker struct {
	mailer   *infra.Mailer
	cb       *infra.CircuitBreaker
	resolver card.ImageResolver
}

func NewNotificacionWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, resolver card.ImageResolver) *NotificacionWorker {
	return &NotificacionWorker{mailer: mailer, cb: cb, resolver: resolver}
}

// Process renders the credential and sends it. A malformed payload is dropped
// (retrying cannot fix it); render and SMTP failures bubble up for retry.
func (w *NotificacionWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Int("credencial_id", payload.Credencial.ID).
			Msg("notificacion_worker: sin correo destino, se omite")
		return nil
	}

	data := card.FromBackend(payload.Credencial)

	var pdf bytes.Buffer
	if err := card.NewCompositor(w.resolver).Compose(&pdf, card.RenderFront(data), card.RenderBack(data)); err != nil {
		return fmt.Errorf("notificacion_worker: componer documento: %w", err)
	}

	subject := "Tu credencial de Cruz Roja Mexicana"
	body := "Adjuntamos tu credencial institucional."
	if payload.Accion == "renovacion" {
		subject = "Tu credencial renovada de Cruz Roja Mexicana"
		body = "Adjuntamos tu credencial renovada."
	}
	filename := fmt.Sprintf("credencial_%d.pdf", payload.Credencial.ID)

	err := w.cb.Execute(func() error {
		return w.mailer.SendCredencial(payload.ToEmail, subject, body, pdf.Bytes(), filename)
	})
	if err != nil {
		return fmt.Errorf("notificacion_worker: enviar correo: %w", err)
	}

	log.Info().Str("to", payload.ToEmail).Int("credencial_id", payload.Credencial.ID).
		Msg("notificacion_worker: credencial enviada")
	return nil
}
