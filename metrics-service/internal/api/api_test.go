package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpv/internal/clock"
	"tpv/internal/server"
	"tpv/metrics-service/internal/repository"
	"tpv/metrics-service/internal/service"
)

type stubRepo struct {
	mesas     []repository.MesaTotal
	lastLimit int
	err       error
}

func (r *stubRepo) DailyTotals(ctx context.Context) ([]repository.DailyTotal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []repository.DailyTotal{{
		Fecha:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalVentas:  decimal.NewFromInt(30),
		NumeroVentas: 2,
	}}, nil
}

func (r *stubRepo) Totals(ctx context.Context, today string) (*repository.Totals, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &repository.Totals{}, nil
}

func (r *stubRepo) ProductTotals(ctx context.Context) ([]repository.ProductTotal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []repository.ProductTotal{}, nil
}

func (r *stubRepo) TopMesas(ctx context.Context, limit int) ([]repository.MesaTotal, error) {
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.mesas) {
		return r.mesas[:limit], nil
	}
	return r.mesas, nil
}

func newTestServer(repo *stubRepo) *echo.Echo {
	clk := clock.Fixed(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	e := server.New(server.Options{Service: "Microservicio de Métricas", Version: "1.0.0", Clock: clk, Logger: zerolog.Nop()})
	NewMetricsHandler(service.NewMetricsService(repo, clk)).Register(e)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDailySalesRoute(t *testing.T) {
	rec := get(newTestServer(&stubRepo{}), "/metricas/ventas-diarias")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"fecha":"2026-03-14","total_ventas":30,"numero_ventas":2,"promedio":15}]`, rec.Body.String())
}

func TestSummaryRouteZeroVentas(t *testing.T) {
	rec := get(newTestServer(&stubRepo{}), "/metricas/resumen")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_ingresos":0,"total_ventas":0,"numero_mesas_usadas":0,"promedio_venta":0,"ventas_hoy":0,"productos_vendidos":0}`, rec.Body.String())
}

func TestProductsRouteEmptyIsArray(t *testing.T) {
	rec := get(newTestServer(&stubRepo{}), "/metricas/productos")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTopTablesRoute(t *testing.T) {
	repo := &stubRepo{mesas: []repository.MesaTotal{
		{Mesa: "A", NumeroVentas: 2, TotalIngresos: decimal.NewFromInt(50)},
		{Mesa: "B", NumeroVentas: 1, TotalIngresos: decimal.NewFromInt(30)},
		{Mesa: "C", NumeroVentas: 1, TotalIngresos: decimal.NewFromInt(10)},
	}}
	e := newTestServer(repo)

	rec := get(e, "/metricas/top-mesas?limite=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"mesa":"A","numero_ventas":2,"total_ingresos":50},{"mesa":"B","numero_ventas":1,"total_ingresos":30}]`, rec.Body.String())
	assert.Equal(t, 2, repo.lastLimit)

	rec = get(e, "/metricas/top-mesas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.DefaultTopLimit, repo.lastLimit)
}

func TestTopTablesRejectsBadLimite(t *testing.T) {
	e := newTestServer(&stubRepo{})

	for _, q := range []string{"abc", "-1", "2.5", "1.0", "0x3", "0b1"} {
		rec := get(e, "/metricas/top-mesas?limite="+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestTopTablesLimiteIsDecimal(t *testing.T) {
	repo := &stubRepo{}
	e := newTestServer(repo)

	rec := get(e, "/metricas/top-mesas?limite=010")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, repo.lastLimit)

	rec = get(e, "/metricas/top-mesas?limite=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, repo.lastLimit)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRoutesReportStoreErrors(t *testing.T) {
	e := newTestServer(&stubRepo{err: errors.New("store unavailable")})

	for _, path := range []string{"/metricas/ventas-diarias", "/metricas/resumen", "/metricas/productos", "/metricas/top-mesas"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.JSONEq(t, `{"error":"store unavailable"}`, rec.Body.String(), path)
	}
}

func TestStatusRoute(t *testing.T) {
	rec := get(newTestServer(&stubRepo{}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"Microservicio de Métricas"`)
}
