package entity

const (
	// DefaultMetodoPago is stored when a venta is created without a payment method.
	DefaultMetodoPago = "cash"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Venta is an order placed at a table. Total is supplied by the caller and
// never derived from its comandas.
type Venta struct {
	ID         int       `json:"id"`
	Mesa       string    `json:"mesa"`
	Fecha      string    `json:"fecha"`
	Hora       *string   `json:"hora"`
	MetodoPago string    `json:"metodo_pago"`
	Total      float64   `json:"total"`
	Comandas   []Comanda `json:"comandas"`
}

// Comanda is one product line of a venta. ProductoID references the external
// product catalog and is never resolved here.
type Comanda struct {
	ID         int    `json:"id"`
	VentaID    int    `json:"venta_id"`
	ProductoID string `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
}

type CreateVentaRequest struct {
	Mesa       string           `json:"mesa"`
	MetodoPago string           `json:"metodo_pago"`
	Total      float64          `json:"total"`
	Comandas   []ComandaRequest `json:"comandas"`
}

type ComandaRequest struct {
	ProductoID string `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
}

/*
MySQL tables

CREATE TABLE venta (
	id INT AUTO_INCREMENT PRIMARY KEY,
	mesa VARCHAR(20) NOT NULL,
	fecha DATE NOT NULL,
	hora TIME NULL,
	metodo_pago VARCHAR(30) NOT NULL DEFAULT 'cash',
	total DOUBLE NOT NULL
);

CREATE TABLE comanda (
	id INT AUTO_INCREMENT PRIMARY KEY,
	venta_id INT NOT NULL REFERENCES venta(id) ON DELETE CASCADE,
	producto_id VARCHAR(50) NOT NULL,
	cantidad INT NOT NULL
);

*/
