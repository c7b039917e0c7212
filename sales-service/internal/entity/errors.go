package entity

import "errors"

var (
	ErrVentaNotFound       = errors.New("Venta no encontrada")
	ErrIdempotentKeyExists = errors.New("idempotent key already exists")
)
