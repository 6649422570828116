package handler

import (
	"net/http"
	"strconv"

	"github.com/SistemasCRMC/credenciales/internal/apierror"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales de acceso"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registro godoc
// @Summary Registro de operador
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistroRequest true "Datos de la cuenta"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registro(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Usuarios Handler ─────────────────────────────────────────────────────────

type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar usuarios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UsuariosHandler) Desactivar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al desactivar usuario"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UsuariosHandler) Reactivar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ReactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al reactivar usuario"))
		return
	}
	c.Status(http.StatusNoContent)
}
