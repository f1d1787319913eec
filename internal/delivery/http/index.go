package http

import (
	"net/http"

	"commodity-index/internal/dto"

	"github.com/labstack/echo/v4"
)

type getIndexHistoryRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}

func (h *HttpAPIHandler) SetupIndex(base *echo.Group) {
	v1 := base.Group("/v1/index")
	{
		v1.GET("/latest", h.GetLatestIndex)
		v1.GET("/history", h.GetIndexHistory)
		v1.GET("/fear-greed", h.GetFearGreed)
		v1.POST("/calculate", h.CalculateIndex)
	}
}

func (h *HttpAPIHandler) GetLatestIndex(c echo.Context) error {
	result, err := h.service.CompositeIndexService.GetLatest(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no index snapshot yet", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", result))
}

func (h *HttpAPIHandler) GetIndexHistory(c echo.Context) error {
	var req getIndexHistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	snapshots, err := h.service.CompositeIndexService.GetHistory(c.Request().Context(), req.Days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", snapshots))
}

func (h *HttpAPIHandler) GetFearGreed(c echo.Context) error {
	result, err := h.service.CompositeIndexService.GetFearGreed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no index snapshot yet", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", result))
}

func (h *HttpAPIHandler) CalculateIndex(c echo.Context) error {
	result, err := h.service.CompositeIndexService.Calculate(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Index calculated", result))
}
