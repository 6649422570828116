package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/SistemasCRMC/credenciales/internal/apierror"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/middleware"
	"github.com/SistemasCRMC/credenciales/internal/service"

	"github.com/gin-gonic/gin"
)

type CredencialesHandler struct{ svc service.CredencialService }

func NewCredencialesHandler(svc service.CredencialService) *CredencialesHandler {
	return &CredencialesHandler{svc: svc}
}

// Crear godoc
// @Summary Emite una credencial nueva
// @Tags credenciales
// @Accept json
// @Produce json
// @Param body body dto.GuardarCredencialRequest true "Datos de la credencial"
// @Success 201 {object} dto.GuardarCredencialResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /api/credentials [post]
func (h *CredencialesHandler) Crear(c *gin.Context) {
	var req dto.GuardarCredencialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// The issuing operator is whoever holds the token, not whatever the
	// body claims.
	req.UsuarioID = middleware.GetClaims(c).UserID

	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary Renueva una credencial existente
// @Tags credenciales
// @Accept json
// @Produce json
// @Param id path int true "ID de la credencial"
// @Param body body dto.GuardarCredencialRequest true "Datos actualizados"
// @Success 200 {object} dto.GuardarCredencialResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/credentials/{id} [put]
func (h *CredencialesHandler) Actualizar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.GuardarCredencialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	req.UsuarioID = middleware.GetClaims(c).UserID

	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrCredencialNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Credencial no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Importar godoc
// @Summary Importa credenciales desde un CSV
// @Tags credenciales
// @Accept mpfd
// @Produce json
// @Param file formData file true "Archivo CSV con encabezado"
// @Success 200 {object} dto.ImportarCredencialesResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/credentials/import [post]
func (h *CredencialesHandler) Importar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo CSV"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()

	resp, err := h.svc.Importar(c.Request.Context(), f, middleware.GetClaims(c).UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CredencialesHandler) Buscar(c *gin.Context) {
	var filter dto.CredencialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar credenciales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CredencialesHandler) ObtenerPorID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Credencial no encontrada"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"credencial": resp})
}

// Validar godoc
// @Summary Valida una credencial (página pública del QR)
// @Tags credenciales
// @Produce json
// @Param id path int true "ID de la credencial"
// @Success 200 {object} dto.ValidacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/credentials/{id}/validate [get]
func (h *CredencialesHandler) Validar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Validar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("No se encontró ninguna credencial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CredencialesHandler) Deshabilitar(c *gin.Context) {
	h.cambiarEstado(c, h.svc.Deshabilitar)
}

func (h *CredencialesHandler) Habilitar(c *gin.Context) {
	h.cambiarEstado(c, h.svc.Habilitar)
}

func (h *CredencialesHandler) cambiarEstado(c *gin.Context, op func(ctx context.Context, id, usuarioID int) error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	err = op(c.Request.Context(), id, middleware.GetClaims(c).UserID)
	if err != nil {
		if errors.Is(err, service.ErrCredencialNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Credencial no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cambiar el estado"))
		return
	}
	c.Status(http.StatusNoContent)
}
