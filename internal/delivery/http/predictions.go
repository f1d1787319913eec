package http

import (
	"net/http"

	"commodity-index/internal/dto"
	"commodity-index/internal/model"

	"github.com/labstack/echo/v4"
)

type getPredictionsRequest struct {
	CommodityID *uint   `query:"commodity_id"`
	AIModelID   *uint   `query:"ai_model_id"`
	Timeframe   *string `query:"timeframe" validate:"omitempty,oneof=3mo 6mo 9mo 12mo"`
	Limit       *int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

func (h *HttpAPIHandler) SetupPredictions(base *echo.Group) {
	v1 := base.Group("/v1/predictions")
	{
		v1.GET("", h.GetPredictions)
	}
}

func (h *HttpAPIHandler) GetPredictions(c echo.Context) error {
	var req getPredictionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	param := model.GetPredictionParam{
		CommodityID: req.CommodityID,
		AIModelID:   req.AIModelID,
		Limit:       req.Limit,
	}
	if req.Timeframe != nil {
		tf := model.Timeframe(*req.Timeframe)
		param.Timeframe = &tf
	}

	predictions, err := h.service.PredictionService.GetPredictions(c.Request().Context(), param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", predictions))
}
