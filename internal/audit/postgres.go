package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/db"
)

// PostgresRecorder appends events to the access_log table.
type PostgresRecorder struct {
	db  *db.DB
	log zerolog.Logger
}

func NewPostgresRecorder(db *db.DB, log zerolog.Logger) *PostgresRecorder {
	return &PostgresRecorder{
		db:  db,
		log: log.With().Str("component", "audit").Logger(),
	}
}

// Record writes one access_log row. The write is synchronous so it
// cannot outlive the request, and any failure is downgraded to a
// warning log.
func (r *PostgresRecorder) Record(ctx context.Context, patientID uuid.UUID, accessType string) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_log (patient_id, access_type)
		VALUES ($1, $2)
	`, patientID, accessType)

	if err != nil {
		r.log.Warn().
			Err(err).
			Str("patient_id", patientID.String()).
			Str("access_type", accessType).
			Msg("access log write failed")
	}
}
