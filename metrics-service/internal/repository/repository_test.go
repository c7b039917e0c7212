package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*MetricsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMetricsRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestDailyTotals(t *testing.T) {
	repo, mock := newMockRepo(t)
	day1 := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY fecha")).
		WillReturnRows(sqlmock.NewRows([]string{"fecha", "total_ventas", "numero_ventas"}).
			AddRow(day1, 30.0, 2).
			AddRow(day2, []byte("12.5"), 1))

	totals, err := repo.DailyTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.True(t, day1.Equal(totals[0].Fecha))
	assert.Equal(t, "30", totals[0].TotalVentas.String())
	assert.Equal(t, int64(2), totals[0].NumeroVentas)
	assert.Equal(t, "12.5", totals[1].TotalVentas.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyTotalsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY fecha")).
		WillReturnRows(sqlmock.NewRows([]string{"fecha", "total_ventas", "numero_ventas"}))

	totals, err := repo.DailyTotals(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestTotals(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(DISTINCT mesa) AS numero_mesas")).
		WithArgs("2026-03-14").
		WillReturnRows(sqlmock.NewRows([]string{"total_ingresos", "total_ventas", "numero_mesas", "ventas_hoy"}).
			AddRow(90.0, 4, 3, 25.5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(cantidad), 0) FROM comanda")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow([]byte("17")))

	totals, err := repo.Totals(context.Background(), "2026-03-14")
	require.NoError(t, err)

	assert.Equal(t, "90", totals.TotalIngresos.String())
	assert.Equal(t, int64(4), totals.TotalVentas)
	assert.Equal(t, int64(3), totals.NumeroMesas)
	assert.Equal(t, "25.5", totals.VentasHoy.String())
	assert.Equal(t, int64(17), totals.ProductosVendidos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductTotals(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY producto_id")).
		WillReturnRows(sqlmock.NewRows([]string{"producto_id", "total_cantidad"}).
			AddRow("cafe", 7).
			AddRow("zumo", 2))

	totals, err := repo.ProductTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ProductTotal{{ProductoID: "cafe", TotalCantidad: 7}, {ProductoID: "zumo", TotalCantidad: 2}}, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopMesas(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total_ingresos DESC")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"mesa", "numero_ventas", "total_ingresos"}).
			AddRow("A", 3, 50.0).
			AddRow("B", 1, 30.0))

	totals, err := repo.TopMesas(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "A", totals[0].Mesa)
	assert.Equal(t, int64(3), totals[0].NumeroVentas)
	assert.Equal(t, "50", totals[0].TotalIngresos.String())
	assert.Equal(t, "B", totals[1].Mesa)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryErrorIsWrapped(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("server has gone away")

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY mesa")).WillReturnError(boom)

	_, err := repo.TopMesas(context.Background(), 5)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "query top mesas")
}
