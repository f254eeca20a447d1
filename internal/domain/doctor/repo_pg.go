package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const doctorCols = `id, name, specialization, department, qualification, experience,
	consultation_fee, profile_photo, available_days, available_time_slots,
	email, phone, bio, is_active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Department, &d.Qualification,
		&d.Experience, &d.ConsultationFee, &d.ProfilePhoto, &d.AvailableDays, &d.AvailableTimeSlots,
		&d.Email, &d.Phone, &d.Bio, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, specialization, department, qualification, experience,
			consultation_fee, profile_photo, available_days, available_time_slots,
			email, phone, bio, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		d.ID, d.Name, d.Specialization, d.Department, d.Qualification, d.Experience,
		d.ConsultationFee, d.ProfilePhoto, d.AvailableDays, d.AvailableTimeSlots,
		d.Email, d.Phone, d.Bio, d.IsActive)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, filter ListFilter) ([]*Doctor, error) {
	query := `SELECT ` + doctorCols + ` FROM doctor WHERE is_active = TRUE`
	var args []interface{}
	idx := 1

	if filter.Keyword != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+filter.Keyword+"%")
		idx++
	}
	if filter.Department != "" {
		query += fmt.Sprintf(` AND department = $%d`, idx)
		args = append(args, filter.Department)
		idx++
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor SET name=$2, specialization=$3, department=$4, qualification=$5,
			experience=$6, consultation_fee=$7, profile_photo=$8, available_days=$9,
			available_time_slots=$10, email=$11, phone=$12, bio=$13, is_active=$14,
			updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialization, d.Department, d.Qualification, d.Experience,
		d.ConsultationFee, d.ProfilePhoto, d.AvailableDays, d.AvailableTimeSlots,
		d.Email, d.Phone, d.Bio, d.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&n)
	return n, err
}
