package api

import "tpv/sales-service/internal/entity"

// Bodies are decoded into pointer fields first so a missing required field
// can be told apart from its zero value.

type createVentaPayload struct {
	Mesa       *string          `json:"mesa"`
	MetodoPago string           `json:"metodo_pago"`
	Total      *float64         `json:"total"`
	Comandas   []comandaPayload `json:"comandas"`
}

type comandaPayload struct {
	ProductoID *string `json:"producto_id"`
	Cantidad   *int    `json:"cantidad"`
}

func (p createVentaPayload) request() (entity.CreateVentaRequest, bool) {
	if p.Mesa == nil || p.Total == nil {
		return entity.CreateVentaRequest{}, false
	}
	req := entity.CreateVentaRequest{
		Mesa:       *p.Mesa,
		MetodoPago: p.MetodoPago,
		Total:      *p.Total,
		Comandas:   make([]entity.ComandaRequest, 0, len(p.Comandas)),
	}
	for _, c := range p.Comandas {
		comanda, ok := c.request()
		if !ok {
			return entity.CreateVentaRequest{}, false
		}
		req.Comandas = append(req.Comandas, comanda)
	}
	return req, true
}

func (p comandaPayload) request() (entity.ComandaRequest, bool) {
	if p.ProductoID == nil || p.Cantidad == nil {
		return entity.ComandaRequest{}, false
	}
	return entity.ComandaRequest{ProductoID: *p.ProductoID, Cantidad: *p.Cantidad}, true
}
