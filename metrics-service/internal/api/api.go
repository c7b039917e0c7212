package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tpv/metrics-service/internal/service"
)

type MetricsHandler struct {
	metricsService *service.MetricsService
}

// NewMetricsHandler creates a new instance of MetricsHandler
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// Register mounts the /metricas routes.
func (h *MetricsHandler) Register(e *echo.Echo) {
	g := e.Group("/metricas")
	g.GET("/ventas-diarias", h.DailySales)
	g.GET("/resumen", h.Summary)
	g.GET("/productos", h.Products)
	g.GET("/top-mesas", h.TopTables)
}

// DailySales --> /metricas/ventas-diarias
func (h *MetricsHandler) DailySales(c echo.Context) error {
	daily, err := h.metricsService.DailySales(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, daily)
}

// Summary --> /metricas/resumen
func (h *MetricsHandler) Summary(c echo.Context) error {
	resumen, err := h.metricsService.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resumen)
}

// Products --> /metricas/productos
func (h *MetricsHandler) Products(c echo.Context) error {
	products, err := h.metricsService.Products(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, products)
}

// TopTables --> /metricas/top-mesas?limite=N
func (h *MetricsHandler) TopTables(c echo.Context) error {
	limite := service.DefaultTopLimit
	err := echo.QueryParamsBinder(c).Int("limite", &limite).BindError()
	if err != nil || limite < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "limite must be a non-negative integer"})
	}

	top, err := h.metricsService.TopTables(c.Request().Context(), limite)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, top)
}
