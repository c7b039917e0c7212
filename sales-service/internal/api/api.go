package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tpv/sales-service/internal/entity"
	"tpv/sales-service/internal/service"
)

type VentaHandler struct {
	ventaService *service.VentaService
}

func NewVentaHandler(ventaService *service.VentaService) *VentaHandler {
	return &VentaHandler{ventaService: ventaService}
}

// Register mounts the venta and comanda routes.
func (h *VentaHandler) Register(e *echo.Echo) {
	e.GET("/ventas", h.ListVentas)
	e.POST("/ventas", h.CreateVenta)
	e.GET("/ventas/:id", h.GetVenta)
	e.GET("/ventas/:id/comandas", h.ListComandas)
	e.POST("/ventas/:id/comandas", h.AddComanda)
}

// ListVentas --> GET /ventas
func (h *VentaHandler) ListVentas(c echo.Context) error {
	ventas, err := h.ventaService.ListVentas(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, ventas)
}

// GetVenta --> GET /ventas/:id
func (h *VentaHandler) GetVenta(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	venta, err := h.ventaService.GetVenta(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, venta)
}

// CreateVenta --> POST /ventas
func (h *VentaHandler) CreateVenta(c echo.Context) error {
	payload := createVentaPayload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	req, ok := payload.request()
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	venta, err := h.ventaService.CreateVenta(c.Request().Context(), req, c.Request().Header.Get("Idempotent-Key"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, venta)
}

// ListComandas --> GET /ventas/:id/comandas
func (h *VentaHandler) ListComandas(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	comandas, err := h.ventaService.ListComandas(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, comandas)
}

// AddComanda --> POST /ventas/:id/comandas
func (h *VentaHandler) AddComanda(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	payload := comandaPayload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	req, ok := payload.request()
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	comanda, err := h.ventaService.AddComanda(c.Request().Context(), id, req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, comanda)
}

func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entity.ErrVentaNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": entity.ErrVentaNotFound.Error()})
	case errors.Is(err, entity.ErrIdempotentKeyExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": entity.ErrIdempotentKeyExists.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
