package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// ErrSlotTaken signals that an active appointment already occupies the
// (doctor, time) slot. Raised by the partial unique index, so concurrent
// bookings cannot both commit.
var ErrSlotTaken = errors.New("slot already booked")

const uniqueViolationCode = "23505"

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment, actorID string) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AppointmentView, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error)
	SetStatus(ctx context.Context, appt *domain.Appointment, newStatus domain.AppointmentStatus, actor domain.ActorType, actorID string, note string) error
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates the repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

// Create inserts the appointment and its initial history entry in one
// transaction. A unique violation on the active-slot index rolls back and
// returns ErrSlotTaken; no partial record is ever visible.
func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment, actorID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertAppt = `
        INSERT INTO appointments (user_id, doctor_id, appointment_time, status, risk_flag)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertAppt,
		appt.UserID,
		appt.DoctorID,
		appt.AppointmentTime,
		appt.Status,
		appt.RiskFlag,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrSlotTaken
		}
		return err
	}

	const insertHistory = `
        INSERT INTO appointment_history (appointment_id, actor_type, actor_id, old_status, new_status, note)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, insertHistory,
		appt.ID,
		domain.ActorTypePatient,
		actorID,
		appt.Status,
		appt.Status,
		"booked",
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `
        SELECT id, user_id, doctor_id, appointment_time, status, risk_flag, created_at, updated_at
        FROM appointments WHERE id=$1`
	var appt domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.UserID,
		&appt.DoctorID,
		&appt.AppointmentTime,
		&appt.Status,
		&appt.RiskFlag,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListByUser returns the patient's appointments ascending by time, enriched
// with directory data. Missing doctor rows surface as "Unknown".
func (r *appointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.AppointmentView, error) {
	const query = `
        SELECT a.id, a.user_id, a.doctor_id, a.appointment_time, a.status, a.risk_flag,
               a.created_at, a.updated_at,
               COALESCE(d.full_name, 'Unknown'), COALESCE(d.specialty, 'Unknown')
        FROM appointments a
        LEFT JOIN doctors d ON d.id = a.doctor_id
        WHERE a.user_id=$1
        ORDER BY a.appointment_time ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AppointmentView
	for rows.Next() {
		var view domain.AppointmentView
		if err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.DoctorID,
			&view.AppointmentTime,
			&view.Status,
			&view.RiskFlag,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.DoctorName,
			&view.Specialty,
		); err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, rows.Err()
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	const query = `
        SELECT id, user_id, doctor_id, appointment_time, status, risk_flag, created_at, updated_at
        FROM appointments WHERE doctor_id=$1
        ORDER BY appointment_time ASC`
	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.DoctorID,
			&appt.AppointmentTime,
			&appt.Status,
			&appt.RiskFlag,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}

// SetStatus overwrites the status and records the transition, both in one
// transaction. user_id and doctor_id are never touched here.
func (r *appointmentRepository) SetStatus(ctx context.Context, appt *domain.Appointment, newStatus domain.AppointmentStatus, actor domain.ActorType, actorID string, note string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const updateAppt = `
        UPDATE appointments SET status=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := tx.Exec(ctx, updateAppt, newStatus, appt.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrSlotTaken
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	const insertHistory = `
        INSERT INTO appointment_history (appointment_id, actor_type, actor_id, old_status, new_status, note)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, insertHistory,
		appt.ID,
		actor,
		actorID,
		appt.Status,
		newStatus,
		note,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	appt.Status = newStatus
	return nil
}
