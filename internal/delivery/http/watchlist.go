package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ticker-screener/internal/dto"
)

func (h *HttpAPIHandler) SetupWatchlist(base *echo.Group) {
	v1 := base.Group("/v1/watchlist")
	{
		v1.GET("", h.ListWatchlist)
		v1.POST("", h.AddTicker)
		v1.DELETE("/:ticker", h.RemoveTicker)
	}
}

func (h *HttpAPIHandler) ListWatchlist(c echo.Context) error {
	items, err := h.service.WatchlistService.List(c.Request().Context())
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}

	response := dto.NewSuccessResponse("Watchlist retrieved", items)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) AddTicker(c echo.Context) error {
	var req dto.AddTickerRequest
	if err := c.Bind(&req); err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}
	if err := h.validator.Struct(req); err != nil {
		response := dto.NewBadRequestResponse(err.Error())
		return c.JSON(response.Code, response)
	}

	item, err := h.service.WatchlistService.Add(c.Request().Context(), req.Ticker, req.AssetType)
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}

	response := dto.NewBaseResponse(http.StatusCreated, fmt.Sprintf("%s added to watchlist", item.Ticker), item)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) RemoveTicker(c echo.Context) error {
	ticker := c.Param("ticker")
	removed, err := h.service.WatchlistService.Remove(c.Request().Context(), ticker)
	if err != nil {
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(response.Code, response)
	}
	if !removed {
		response := dto.NewBaseResponse(http.StatusNotFound, fmt.Sprintf("%s is not on the watchlist", ticker), nil)
		return c.JSON(response.Code, response)
	}

	response := dto.NewSuccessResponse(fmt.Sprintf("%s removed from watchlist", ticker), nil)
	return c.JSON(response.Code, response)
}
