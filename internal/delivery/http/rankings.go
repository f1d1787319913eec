package http

import (
	"net/http"

	"commodity-index/internal/dto"

	"github.com/labstack/echo/v4"
)

type getRankingsRequest struct {
	Period string `query:"period" validate:"omitempty,oneof=7d 30d 90d all"`
}

func (h *HttpAPIHandler) SetupRankings(base *echo.Group) {
	v1 := base.Group("/v1/rankings")
	{
		v1.GET("", h.GetRankings)
	}
}

func (h *HttpAPIHandler) GetRankings(c echo.Context) error {
	var req getRankingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if req.Period == "" {
		req.Period = dto.PeriodAll
	}

	rankings, err := h.service.RankingService.RankModels(c.Request().Context(), req.Period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", rankings))
}
