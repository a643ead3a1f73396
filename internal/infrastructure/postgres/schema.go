package postgres

import (
	"context"
	"fmt"
)

// Todas las colecciones comparten una tabla; kind separa productos, entradas, usuarios, etc.
// search_text, filter_value y record_date se derivan del registro al escribir.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	kind         TEXT        NOT NULL,
	id           BIGINT      NOT NULL,
	seq          BIGSERIAL,
	data         JSONB       NOT NULL,
	search_text  TEXT        NOT NULL DEFAULT '',
	filter_value TEXT        NOT NULL DEFAULT '',
	record_date  DATE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS records_kind_seq_idx ON records (kind, seq);
CREATE INDEX IF NOT EXISTS records_kind_filter_idx ON records (kind, filter_value);
CREATE INDEX IF NOT EXISTS records_kind_date_idx ON records (kind, record_date);
CREATE UNIQUE INDEX IF NOT EXISTS records_user_email_idx ON records ((data->>'email')) WHERE kind = 'users';
`

// EnsureSchema crea la tabla y los índices si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
