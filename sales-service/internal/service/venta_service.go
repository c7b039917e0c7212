package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tpv/internal/clock"
	"tpv/sales-service/internal/entity"
)

// VentaRepository is the persistence the sales service needs.
type VentaRepository interface {
	ListVentas(ctx context.Context) ([]entity.Venta, error)
	GetVenta(ctx context.Context, id int) (*entity.Venta, error)
	CreateVenta(ctx context.Context, venta *entity.Venta) (*entity.Venta, error)
	ListComandas(ctx context.Context, ventaID int) ([]entity.Comanda, error)
	AddComanda(ctx context.Context, comanda *entity.Comanda) (*entity.Comanda, error)
}

// IdempotencyStore records idempotency keys. Claim reports false when the
// key was already claimed. Release frees a key whose request did not
// complete so the caller can retry it.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// EventPublisher delivers venta events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

// VentaService provides venta and comanda operations.
type VentaService struct {
	ventaRepo   VentaRepository
	clock       clock.Clock
	idempotency IdempotencyStore
	events      EventPublisher
}

// NewVentaService creates a VentaService. idempotency and events may be nil.
func NewVentaService(ventaRepo VentaRepository, clk clock.Clock, idempotency IdempotencyStore, events EventPublisher) *VentaService {
	return &VentaService{
		ventaRepo:   ventaRepo,
		clock:       clk,
		idempotency: idempotency,
		events:      events,
	}
}

func (s *VentaService) ListVentas(ctx context.Context) ([]entity.Venta, error) {
	ventas, err := s.ventaRepo.ListVentas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error listing ventas")
		return nil, err
	}
	return ventas, nil
}

func (s *VentaService) GetVenta(ctx context.Context, id int) (*entity.Venta, error) {
	return s.ventaRepo.GetVenta(ctx, id)
}

// CreateVenta stamps the venta with the current date and time and stores it
// together with its comandas.
func (s *VentaService) CreateVenta(ctx context.Context, req entity.CreateVentaRequest, idempotentKey string) (*entity.Venta, error) {
	if idempotentKey != "" && s.idempotency != nil {
		claimed, err := s.idempotency.Claim(ctx, idempotentKey)
		if err != nil {
			log.Error().Err(err).Str("key", idempotentKey).Msg("Error validating idempotent key")
			return nil, err
		}
		if !claimed {
			return nil, entity.ErrIdempotentKeyExists
		}
	}

	now := s.clock.Now()
	hora := now.Format(entity.TimeLayout)
	venta := &entity.Venta{
		Mesa:       req.Mesa,
		Fecha:      now.Format(entity.DateLayout),
		Hora:       &hora,
		MetodoPago: req.MetodoPago,
		Total:      req.Total,
		Comandas:   make([]entity.Comanda, 0, len(req.Comandas)),
	}
	if venta.MetodoPago == "" {
		venta.MetodoPago = entity.DefaultMetodoPago
	}
	for _, c := range req.Comandas {
		venta.Comandas = append(venta.Comandas, entity.Comanda{ProductoID: c.ProductoID, Cantidad: c.Cantidad})
	}

	created, err := s.ventaRepo.CreateVenta(ctx, venta)
	if err != nil {
		log.Error().Err(err).Str("mesa", req.Mesa).Msg("Error creating venta")
		s.release(ctx, idempotentKey)
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("venta-created-%d", created.ID), created)
	return created, nil
}

func (s *VentaService) ListComandas(ctx context.Context, ventaID int) ([]entity.Comanda, error) {
	return s.ventaRepo.ListComandas(ctx, ventaID)
}

// AddComanda appends a comanda to an existing venta.
func (s *VentaService) AddComanda(ctx context.Context, ventaID int, req entity.ComandaRequest) (*entity.Comanda, error) {
	comanda, err := s.ventaRepo.AddComanda(ctx, &entity.Comanda{
		VentaID:    ventaID,
		ProductoID: req.ProductoID,
		Cantidad:   req.Cantidad,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprintf("comanda-added-%d", comanda.ID), comanda)
	return comanda, nil
}

func (s *VentaService) release(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Error releasing idempotent key")
	}
}

// publish is best effort: the write is already committed, so a failed
// delivery is logged and never reported to the caller.
func (s *VentaService) publish(ctx context.Context, key string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Error publishing venta event")
	}
}
