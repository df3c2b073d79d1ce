package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// PostgresRepo persiste snapshots de enriquecimento em um banco Postgres
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertCurrent insere ou atualiza o snapshot corrente de um (esporte, data)
// Utiliza ON CONFLICT para garantir atomicidade por par esporte+data
func (r *PostgresRepo) UpsertCurrent(ctx context.Context, s events.EnrichmentSnapshot) error {
	payload, err := json.Marshal(s.Events)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO snapshot_current
		  (sport, date_context, data_source, payload, generated_at)
		VALUES
		  ($1,$2,$3,$4,$5)
		ON CONFLICT (sport, date_context) DO UPDATE SET
		  data_source  = EXCLUDED.data_source,
		  payload      = EXCLUDED.payload,
		  generated_at = EXCLUDED.generated_at
	`
	_, err = r.DB.ExecContext(ctx, q,
		s.Sport, s.DateContext, s.DataSource, payload, s.GeneratedAt,
	)
	return err
}

// InsertHistory insere o snapshot na trilha histórica (snapshot_history)
func (r *PostgresRepo) InsertHistory(ctx context.Context, s events.EnrichmentSnapshot) error {
	payload, err := json.Marshal(s.Events)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO snapshot_history
		  (sport, date_context, data_source, payload, generated_at)
		VALUES
		  ($1,$2,$3,$4,$5)
	`
	_, err = r.DB.ExecContext(ctx, q,
		s.Sport, s.DateContext, s.DataSource, payload, s.GeneratedAt,
	)
	return err
}
