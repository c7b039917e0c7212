package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"tpv/sales-service/internal/entity"
)

// mysqlErrNoReferencedRow is returned when a child row references a missing parent.
const mysqlErrNoReferencedRow = 1452

const (
	ventaColumns   = `id, mesa, fecha, hora, metodo_pago, total`
	comandaColumns = `id, venta_id, producto_id, cantidad`
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type VentaRepository struct {
	db *sql.DB
}

func NewVentaRepository(db *sql.DB) *VentaRepository {
	return &VentaRepository{db: db}
}

// ListVentas returns every venta with its comandas, using one query per table.
func (r *VentaRepository) ListVentas(ctx context.Context) ([]entity.Venta, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ventaColumns+` FROM venta ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query ventas")
	}
	defer rows.Close()

	ventas := []entity.Venta{}
	index := map[int]int{}
	for rows.Next() {
		venta, err := scanVenta(rows)
		if err != nil {
			return nil, err
		}
		index[venta.ID] = len(ventas)
		ventas = append(ventas, *venta)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate ventas")
	}

	comandaRows, err := r.db.QueryContext(ctx, `SELECT `+comandaColumns+` FROM comanda ORDER BY venta_id, id`)
	if err != nil {
		return nil, errors.Wrap(err, "query comandas")
	}
	defer comandaRows.Close()

	for comandaRows.Next() {
		comanda, err := scanComanda(comandaRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[comanda.VentaID]; ok {
			ventas[i].Comandas = append(ventas[i].Comandas, comanda)
		}
	}
	if err := comandaRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate comandas")
	}

	return ventas, nil
}

func (r *VentaRepository) GetVenta(ctx context.Context, id int) (*entity.Venta, error) {
	venta, err := scanVenta(r.db.QueryRowContext(ctx, `SELECT `+ventaColumns+` FROM venta WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	venta.Comandas, err = r.comandasOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return venta, nil
}

// CreateVenta inserts the venta and all its comandas in one transaction and
// fills in the generated ids.
func (r *VentaRepository) CreateVenta(ctx context.Context, venta *entity.Venta) (*entity.Venta, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}

	ventaQuery := `INSERT INTO venta (mesa, fecha, hora, metodo_pago, total) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ventaQuery, venta.Mesa, venta.Fecha, nullString(venta.Hora), venta.MetodoPago, venta.Total)
	if err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "insert venta")
	}

	ventaID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "venta id")
	}
	venta.ID = int(ventaID)

	if len(venta.Comandas) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO comanda (venta_id, producto_id, cantidad) VALUES (?, ?, ?)`)
		if err != nil {
			tx.Rollback()
			return nil, errors.Wrap(err, "prepare comanda insert")
		}
		defer stmt.Close()

		for i := range venta.Comandas {
			comanda := &venta.Comandas[i]
			res, err := stmt.ExecContext(ctx, ventaID, comanda.ProductoID, comanda.Cantidad)
			if err != nil {
				tx.Rollback()
				return nil, errors.Wrap(err, "insert comanda")
			}
			comandaID, err := res.LastInsertId()
			if err != nil {
				tx.Rollback()
				return nil, errors.Wrap(err, "comanda id")
			}
			comanda.ID = int(comandaID)
			comanda.VentaID = venta.ID
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit venta")
	}

	return venta, nil
}

// ListComandas returns the comandas of a venta, or ErrVentaNotFound when the
// venta does not exist.
func (r *VentaRepository) ListComandas(ctx context.Context, ventaID int) ([]entity.Comanda, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM venta WHERE id = ?)`, ventaID).Scan(&exists)
	if err != nil {
		return nil, errors.Wrap(err, "check venta")
	}
	if !exists {
		return nil, entity.ErrVentaNotFound
	}
	return r.comandasOf(ctx, ventaID)
}

// AddComanda appends a comanda to an existing venta. The foreign key rejects
// unknown ventas, which is reported as ErrVentaNotFound.
func (r *VentaRepository) AddComanda(ctx context.Context, comanda *entity.Comanda) (*entity.Comanda, error) {
	query := `INSERT INTO comanda (venta_id, producto_id, cantidad) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, comanda.VentaID, comanda.ProductoID, comanda.Cantidad)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoReferencedRow {
			return nil, entity.ErrVentaNotFound
		}
		return nil, errors.Wrap(err, "insert comanda")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "comanda id")
	}
	comanda.ID = int(id)
	return comanda, nil
}

// DeleteVenta removes a venta and its comandas atomically.
func (r *VentaRepository) DeleteVenta(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comanda WHERE venta_id = ?`, id); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "delete comandas")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM venta WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "delete venta")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "delete venta")
	}
	if affected == 0 {
		tx.Rollback()
		return entity.ErrVentaNotFound
	}

	return errors.Wrap(tx.Commit(), "commit delete")
}

func (r *VentaRepository) comandasOf(ctx context.Context, ventaID int) ([]entity.Comanda, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+comandaColumns+` FROM comanda WHERE venta_id = ? ORDER BY id`, ventaID)
	if err != nil {
		return nil, errors.Wrap(err, "query comandas")
	}
	defer rows.Close()

	comandas := []entity.Comanda{}
	for rows.Next() {
		comanda, err := scanComanda(rows)
		if err != nil {
			return nil, err
		}
		comandas = append(comandas, comanda)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate comandas")
	}
	return comandas, nil
}

func scanVenta(s rowScanner) (*entity.Venta, error) {
	var (
		venta entity.Venta
		fecha time.Time
		hora  sql.NullString
	)
	err := s.Scan(&venta.ID, &venta.Mesa, &fecha, &hora, &venta.MetodoPago, &venta.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrVentaNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan venta")
	}

	venta.Fecha = fecha.Format(entity.DateLayout)
	if hora.Valid {
		venta.Hora = &hora.String
	}
	venta.Comandas = []entity.Comanda{}
	return &venta, nil
}

func scanComanda(s rowScanner) (entity.Comanda, error) {
	var comanda entity.Comanda
	if err := s.Scan(&comanda.ID, &comanda.VentaID, &comanda.ProductoID, &comanda.Cantidad); err != nil {
		return comanda, errors.Wrap(err, "scan comanda")
	}
	return comanda, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
