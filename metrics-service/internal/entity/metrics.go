package entity

// VentaDiaria aggregates the ventas of one calendar day.
type VentaDiaria struct {
	Fecha        string  `json:"fecha"`
	TotalVentas  float64 `json:"total_ventas"`
	NumeroVentas int64   `json:"numero_ventas"`
	Promedio     float64 `json:"promedio"`
}

type Resumen struct {
	TotalIngresos     float64 `json:"total_ingresos"`
	TotalVentas       int64   `json:"total_ventas"`
	NumeroMesasUsadas int64   `json:"numero_mesas_usadas"`
	PromedioVenta     float64 `json:"promedio_venta"`
	VentasHoy         float64 `json:"ventas_hoy"`
	ProductosVendidos int64   `json:"productos_vendidos"`
}

// MetricaProducto reports units sold per product. TotalIngresos is always 0:
// prices live in the external product catalog, not in this schema.
type MetricaProducto struct {
	ProductoID    string  `json:"producto_id"`
	TotalCantidad int64   `json:"total_cantidad"`
	TotalIngresos float64 `json:"total_ingresos"`
}

type MetricaMesa struct {
	Mesa          string  `json:"mesa"`
	NumeroVentas  int64   `json:"numero_ventas"`
	TotalIngresos float64 `json:"total_ingresos"`
}
