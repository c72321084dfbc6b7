package http

import (
	"github.com/labstack/echo/v4"

	"ticker-screener/internal/dto"
)

func (h *HttpAPIHandler) SetupCharts(base *echo.Group) {
	v1 := base.Group("/v1/charts")
	{
		v1.GET("/:ticker/:type", h.GetChart)
	}
}

func (h *HttpAPIHandler) GetChart(c echo.Context) error {
	chartType, err := dto.ParseChartType(c.Param("type"))
	if err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}

	bundle := h.service.ChartService.Build(c.Request().Context(), c.Param("ticker"), chartType)
	response := dto.NewSuccessResponse("Chart generated", bundle)
	return c.JSON(response.Code, response)
}
