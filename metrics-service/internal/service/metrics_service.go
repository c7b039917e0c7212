package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"tpv/internal/clock"
	"tpv/metrics-service/internal/entity"
	"tpv/metrics-service/internal/repository"
)

// DefaultTopLimit is the number of mesas returned when no limit is given.
const DefaultTopLimit = 5

const dateLayout = "2006-01-02"

type MetricsRepository interface {
	DailyTotals(ctx context.Context) ([]repository.DailyTotal, error)
	Totals(ctx context.Context, today string) (*repository.Totals, error)
	ProductTotals(ctx context.Context) ([]repository.ProductTotal, error)
	TopMesas(ctx context.Context, limit int) ([]repository.MesaTotal, error)
}

// MetricsService computes read-only reports over ventas and comandas.
type MetricsService struct {
	metricsRepo MetricsRepository
	clock       clock.Clock
}

func NewMetricsService(metricsRepo MetricsRepository, clk clock.Clock) *MetricsService {
	return &MetricsService{metricsRepo: metricsRepo, clock: clk}
}

// DailySales returns one entry per fecha that has at least one venta.
func (s *MetricsService) DailySales(ctx context.Context) ([]entity.VentaDiaria, error) {
	totals, err := s.metricsRepo.DailyTotals(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error getting daily totals")
		return nil, err
	}

	out := make([]entity.VentaDiaria, 0, len(totals))
	for _, t := range totals {
		out = append(out, entity.VentaDiaria{
			Fecha:        t.Fecha.Format(dateLayout),
			TotalVentas:  t.TotalVentas.InexactFloat64(),
			NumeroVentas: t.NumeroVentas,
			Promedio:     average(t.TotalVentas, t.NumeroVentas).InexactFloat64(),
		})
	}
	return out, nil
}

// Summary returns the overall aggregates. "Today" is taken from the clock.
func (s *MetricsService) Summary(ctx context.Context) (*entity.Resumen, error) {
	today := s.clock.Now().Format(dateLayout)
	totals, err := s.metricsRepo.Totals(ctx, today)
	if err != nil {
		log.Error().Err(err).Str("today", today).Msg("Error getting totals")
		return nil, err
	}

	return &entity.Resumen{
		TotalIngresos:     totals.TotalIngresos.InexactFloat64(),
		TotalVentas:       totals.TotalVentas,
		NumeroMesasUsadas: totals.NumeroMesas,
		PromedioVenta:     average(totals.TotalIngresos, totals.TotalVentas).InexactFloat64(),
		VentasHoy:         totals.VentasHoy.InexactFloat64(),
		ProductosVendidos: totals.ProductosVendidos,
	}, nil
}

// Products reports units per product. Revenue is always zero because no
// price data is stored with comandas.
func (s *MetricsService) Products(ctx context.Context) ([]entity.MetricaProducto, error) {
	totals, err := s.metricsRepo.ProductTotals(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error getting product totals")
		return nil, err
	}

	out := make([]entity.MetricaProducto, 0, len(totals))
	for _, t := range totals {
		out = append(out, entity.MetricaProducto{
			ProductoID:    t.ProductoID,
			TotalCantidad: t.TotalCantidad,
			TotalIngresos: 0,
		})
	}
	return out, nil
}

// TopTables returns up to limit mesas ordered by revenue, highest first.
func (s *MetricsService) TopTables(ctx context.Context, limit int) ([]entity.MetricaMesa, error) {
	totals, err := s.metricsRepo.TopMesas(ctx, limit)
	if err != nil {
		log.Error().Err(err).Int("limite", limit).Msg("Error getting top mesas")
		return nil, err
	}

	out := make([]entity.MetricaMesa, 0, len(totals))
	for _, t := range totals {
		out = append(out, entity.MetricaMesa{
			Mesa:          t.Mesa,
			NumeroVentas:  t.NumeroVentas,
			TotalIngresos: t.TotalIngresos.InexactFloat64(),
		})
	}
	return out, nil
}

// average is total/count, or zero when count is zero.
func average(total decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(count))
}
