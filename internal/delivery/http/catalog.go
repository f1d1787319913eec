package http

import (
	"net/http"

	"commodity-index/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupCatalog(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/commodities", h.GetCommodities)
		v1.GET("/models", h.GetModels)
	}
}

func (h *HttpAPIHandler) GetCommodities(c echo.Context) error {
	commodities, err := h.service.MarketDataService.GetCommodities(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", commodities))
}

func (h *HttpAPIHandler) GetModels(c echo.Context) error {
	models, err := h.service.PredictionService.GetModels(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", models))
}
