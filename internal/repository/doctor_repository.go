package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// DoctorRepository handles persistence for the doctor directory.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	List(ctx context.Context, specialty string) ([]domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository instantiates the repository.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (full_name, specialty, bio, email, password_hash)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		doctor.FullName,
		doctor.Specialty,
		doctor.Bio,
		doctor.Email,
		doctor.PasswordHash,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors SET full_name=$1, specialty=$2, bio=$3, email=$4, password_hash=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		doctor.FullName,
		doctor.Specialty,
		doctor.Bio,
		doctor.Email,
		doctor.PasswordHash,
		doctor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	const query = `
        SELECT id, full_name, specialty, bio, email, password_hash, created_at, updated_at
        FROM doctors WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	const query = `
        SELECT id, full_name, specialty, bio, email, password_hash, created_at, updated_at
        FROM doctors WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

// List returns doctors in insertion order, optionally filtered by specialty.
func (r *doctorRepository) List(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	base := `
        SELECT id, full_name, specialty, bio, email, password_hash, created_at, updated_at
        FROM doctors`
	args := []any{}
	if specialty != "" {
		base += ` WHERE specialty=$1`
		args = append(args, specialty)
	}
	base += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Doctor
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.FullName,
			&doctor.Specialty,
			&doctor.Bio,
			&doctor.Email,
			&doctor.PasswordHash,
			&doctor.CreatedAt,
			&doctor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, doctor)
	}
	return result, rows.Err()
}

func (r *doctorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.FullName,
		&doctor.Specialty,
		&doctor.Bio,
		&doctor.Email,
		&doctor.PasswordHash,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}
