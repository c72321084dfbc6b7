package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticker-screener/internal/dto"
)

func (h *HttpAPIHandler) SetupScreener(base *echo.Group) {
	v1 := base.Group("/v1/screener")
	{
		v1.POST("/analyze", h.AnalyzeWatchlist)
		v1.GET("/snapshots", h.GetSnapshots)
	}
}

func (h *HttpAPIHandler) AnalyzeWatchlist(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}

	results, err := h.service.AnalyzerService.AnalyzeWatchlist(c.Request().Context(), req.Criteria, req.PassingOnly)
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}

	response := dto.NewSuccessResponse("Watchlist analyzed", results)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetSnapshots(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	snapshots, err := h.service.AnalyzerService.RecentSnapshots(c.Request().Context(), limit)
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}

	response := dto.NewSuccessResponse("Snapshots retrieved", snapshots)
	return c.JSON(response.Code, response)
}
