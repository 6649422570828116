package handler

import (
	"net/http"

	"github.com/SistemasCRMC/credenciales/internal/apierror"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/service"

	"github.com/gin-gonic/gin"
)

type BitacoraHandler struct{ svc service.BitacoraService }

func NewBitacoraHandler(svc service.BitacoraService) *BitacoraHandler {
	return &BitacoraHandler{svc: svc}
}

func (h *BitacoraHandler) Listar(c *gin.Context) {
	var filter dto.BitacoraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtros inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la bitácora"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
