package card

import "errors"

// Operation-boundary errors, one per category of the failure taxonomy. The
// messages are the ones shown to the operator, so they stay in Spanish.
var (
	// ErrNoAutenticado: create-mode save attempted without a known actor.
	// Detected locally; no network call is made.
	ErrNoAutenticado = errors.New("usuario no autenticado: por favor, inicia sesión")

	// ErrSesionExpirada: the backend rejected the session token.
	ErrSesionExpirada = errors.New("sesión expirada: por favor, inicia sesión nuevamente")

	// ErrDatosInvalidos: the backend rejected the payload.
	ErrDatosInvalidos = errors.New("datos inválidos: por favor, revisa la información ingresada")

	// ErrNoEncontrada: the requested credential does not exist.
	ErrNoEncontrada = errors.New("no se encontró ninguna credencial")

	// ErrServidor: transient backend failure.
	ErrServidor = errors.New("error del servidor: intenta más tarde")

	// ErrConexion: no response received at all.
	ErrConexion = errors.New("error de conexión: verifica tu conexión a internet")

	// ErrImpresion: the print document could not be produced.
	ErrImpresion = errors.New("no se pudo generar el documento de impresión")

	// ErrOcupado: a save or print is already in flight; the triggering
	// control should have been disabled.
	ErrOcupado = errors.New("hay una operación en curso")
)
