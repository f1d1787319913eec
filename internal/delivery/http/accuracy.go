package http

import (
	"net/http"

	"commodity-index/internal/dto"

	"github.com/labstack/echo/v4"
)

type getAccuracyRequest struct {
	AIModelID   uint   `query:"ai_model_id" validate:"required"`
	CommodityID uint   `query:"commodity_id" validate:"required"`
	Period      string `query:"period" validate:"omitempty,oneof=7d 30d 90d all"`
}

func (h *HttpAPIHandler) SetupAccuracy(base *echo.Group) {
	v1 := base.Group("/v1/accuracy")
	{
		v1.GET("", h.GetAccuracy)
	}
}

func (h *HttpAPIHandler) GetAccuracy(c echo.Context) error {
	var req getAccuracyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if req.Period == "" {
		req.Period = dto.PeriodAll
	}

	result, err := h.service.AccuracyService.GetAccuracy(c.Request().Context(), req.AIModelID, req.CommodityID, req.Period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no scored predictions for this pair", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", result))
}
