package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DailyTotal is the raw aggregate of one fecha.
type DailyTotal struct {
	Fecha        time.Time       `db:"fecha"`
	TotalVentas  decimal.Decimal `db:"total_ventas"`
	NumeroVentas int64           `db:"numero_ventas"`
}

// Totals are the aggregates over every venta and comanda.
type Totals struct {
	TotalIngresos     decimal.Decimal `db:"total_ingresos"`
	TotalVentas       int64           `db:"total_ventas"`
	NumeroMesas       int64           `db:"numero_mesas"`
	VentasHoy         decimal.Decimal `db:"ventas_hoy"`
	ProductosVendidos int64           `db:"-"`
}

type ProductTotal struct {
	ProductoID    string `db:"producto_id"`
	TotalCantidad int64  `db:"total_cantidad"`
}

type MesaTotal struct {
	Mesa          string          `db:"mesa"`
	NumeroVentas  int64           `db:"numero_ventas"`
	TotalIngresos decimal.Decimal `db:"total_ingresos"`
}

// MetricsRepository runs read-only aggregate queries over venta and comanda.
type MetricsRepository struct {
	db *sqlx.DB
}

func NewMetricsRepository(db *sqlx.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

func (r *MetricsRepository) DailyTotals(ctx context.Context) ([]DailyTotal, error) {
	query := `
		SELECT fecha,
			COALESCE(SUM(total), 0) AS total_ventas,
			COUNT(id) AS numero_ventas
		FROM venta
		GROUP BY fecha
		ORDER BY fecha`

	totals := []DailyTotal{}
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, errors.Wrap(err, "query daily totals")
	}
	return totals, nil
}

// Totals aggregates all ventas; VentasHoy only sums ventas whose fecha is today
// (formatted YYYY-MM-DD).
func (r *MetricsRepository) Totals(ctx context.Context, today string) (*Totals, error) {
	query := `
		SELECT COALESCE(SUM(total), 0) AS total_ingresos,
			COUNT(id) AS total_ventas,
			COUNT(DISTINCT mesa) AS numero_mesas,
			COALESCE(SUM(CASE WHEN fecha = ? THEN total ELSE 0 END), 0) AS ventas_hoy
		FROM venta`

	totals := &Totals{}
	if err := r.db.GetContext(ctx, totals, query, today); err != nil {
		return nil, errors.Wrap(err, "query venta totals")
	}

	if err := r.db.GetContext(ctx, &totals.ProductosVendidos, `SELECT COALESCE(SUM(cantidad), 0) FROM comanda`); err != nil {
		return nil, errors.Wrap(err, "query comanda totals")
	}
	return totals, nil
}

func (r *MetricsRepository) ProductTotals(ctx context.Context) ([]ProductTotal, error) {
	query := `
		SELECT producto_id,
			COALESCE(SUM(cantidad), 0) AS total_cantidad
		FROM comanda
		GROUP BY producto_id
		ORDER BY producto_id`

	totals := []ProductTotal{}
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, errors.Wrap(err, "query product totals")
	}
	return totals, nil
}

// TopMesas returns the limit mesas with the highest summed total.
func (r *MetricsRepository) TopMesas(ctx context.Context, limit int) ([]MesaTotal, error) {
	query := `
		SELECT mesa,
			COUNT(id) AS numero_ventas,
			COALESCE(SUM(total), 0) AS total_ingresos
		FROM venta
		GROUP BY mesa
		ORDER BY total_ingresos DESC
		LIMIT ?`

	totals := []MesaTotal{}
	if err := r.db.SelectContext(ctx, &totals, query, limit); err != nil {
		return nil, errors.Wrap(err, "query top mesas")
	}
	return totals, nil
}
