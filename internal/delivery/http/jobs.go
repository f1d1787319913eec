package http

import (
	"net/http"

	"commodity-index/internal/dto"
	"commodity-index/internal/model"

	"github.com/labstack/echo/v4"
)

type runJobRequest struct {
	JobID uint `json:"job_id"`
}

func (h *HttpAPIHandler) SetupJobs(base *echo.Group) {
	v1 := base.Group("/v1/jobs")
	{
		v1.GET("", h.GetJobs)
		v1.POST("/run", h.RunJobs)
	}
}

func (h *HttpAPIHandler) GetJobs(c echo.Context) error {
	jobs, err := h.service.SchedulerService.GetJobSchedule(c.Request().Context(), model.GetJobParam{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Success", jobs))
}

// RunJobs triggers due schedules, or a single job when job_id is given.
func (h *HttpAPIHandler) RunJobs(c echo.Context) error {
	var req runJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if req.JobID != 0 {
		if err := h.service.SchedulerService.RunJobTask(c.Request().Context(), req.JobID); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
		}
		return c.JSON(http.StatusOK, dto.NewSuccessResponse("Job triggered", nil))
	}

	response := dto.NewBaseResponse(http.StatusOK, "Start running jobs", nil)
	if err := h.service.SchedulerService.Execute(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}
