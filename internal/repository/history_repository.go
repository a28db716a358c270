package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// HistoryRepository reads audit entries. Writes happen inside the
// appointment repository transactions so they commit with the row they
// describe.
type HistoryRepository interface {
	ListByAppointment(ctx context.Context, appointmentID string) ([]domain.AppointmentHistory, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]domain.AppointmentHistory, error) {
	const query = `
        SELECT id, appointment_id, actor_type, actor_id, old_status, new_status, note, created_at
        FROM appointment_history WHERE appointment_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AppointmentHistory
	for rows.Next() {
		var entry domain.AppointmentHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.AppointmentID,
			&entry.ActorType,
			&entry.ActorID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
