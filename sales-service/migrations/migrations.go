package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var retryInterval = 1 * time.Second

const ventaTable = `
	CREATE TABLE IF NOT EXISTS venta (
		id INT AUTO_INCREMENT PRIMARY KEY,
		mesa VARCHAR(20) NOT NULL,
		fecha DATE NOT NULL,
		hora TIME NULL,
		metodo_pago VARCHAR(30) NOT NULL DEFAULT 'cash',
		total DOUBLE NOT NULL,
		INDEX idx_venta_fecha (fecha),
		INDEX idx_venta_mesa (mesa)
	);
`

const comandaTable = `
	CREATE TABLE IF NOT EXISTS comanda (
		id INT AUTO_INCREMENT PRIMARY KEY,
		venta_id INT NOT NULL,
		producto_id VARCHAR(50) NOT NULL,
		cantidad INT NOT NULL,
		INDEX idx_comanda_producto (producto_id),
		FOREIGN KEY (venta_id) REFERENCES venta(id) ON DELETE CASCADE
	);
`

// AutoMigrateVentas creates the venta table if it does not exist.
func AutoMigrateVentas(ctx context.Context, db *sql.DB, retries int) error {
	return execWithRetry(ctx, db, "venta", ventaTable, retries)
}

// AutoMigrateComandas creates the comanda table if it does not exist. It must
// run after AutoMigrateVentas because of the foreign key.
func AutoMigrateComandas(ctx context.Context, db *sql.DB, retries int) error {
	return execWithRetry(ctx, db, "comanda", comandaTable, retries)
}

func execWithRetry(ctx context.Context, db *sql.DB, table, query string, retries int) error {
	_, err := db.ExecContext(ctx, query)
	for i := 0; err != nil && i < retries; i++ {
		log.Warn().Err(err).Str("table", table).Int("attempt", i+1).Msg("retrying table creation")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
		_, err = db.ExecContext(ctx, query)
	}
	return errors.Wrapf(err, "create table %s", table)
}
