package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/volcano/internal/middleware"
	"github.com/xxxsen/volcano/internal/pkg/response"
	"github.com/xxxsen/volcano/internal/service"
)

type VolcanoHandler struct {
	volcanoes *service.VolcanoService
}

func NewVolcanoHandler(volcanoes *service.VolcanoService) *VolcanoHandler {
	return &VolcanoHandler{volcanoes: volcanoes}
}

func (h *VolcanoHandler) Countries(c *gin.Context) {
	countries, err := h.volcanoes.Countries(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, countries)
}

func (h *VolcanoHandler) List(c *gin.Context) {
	items, err := h.volcanoes.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *VolcanoHandler) Get(c *gin.Context) {
	volcano, err := h.volcanoes.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, volcano)
}
