package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, doctor_id, appointment_date, time_slot,
	reason_for_visit, appointment_number, status, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.AppointmentDate, &a.TimeSlot,
		&a.ReasonForVisit, &a.AppointmentNumber, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, appointment_date, time_slot,
			reason_for_visit, appointment_number, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.PatientID, a.DoctorID, a.AppointmentDate, a.TimeSlot,
		a.ReasonForVisit, a.AppointmentNumber, a.Status)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "appointment_slot_active_idx":
			return ErrSlotTaken
		case "appointment_number_key":
			return ErrDuplicateNumber
		}
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

const detailCols = `a.id, a.patient_id, a.doctor_id, a.appointment_date, a.time_slot,
	a.reason_for_visit, a.appointment_number, a.status, a.created_at, a.updated_at`

// Doctors can be hard-deleted while their appointments remain, so the
// joins are LEFT and the display fields coalesce to empty strings.
const doctorJoin = `LEFT JOIN doctor d ON d.id = a.doctor_id`
const patientJoin = `LEFT JOIN patient p ON p.id = a.patient_id`

func (r *repoPG) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+detailCols+`,
			COALESCE(d.name, ''), COALESCE(d.specialization, ''),
			COALESCE(p.full_name, ''), COALESCE(p.email, ''), COALESCE(p.phone, '')
		FROM appointment a `+doctorJoin+` `+patientJoin+`
		WHERE a.id = $1`, id)

	var det Detail
	det.Doctor = &DoctorRef{}
	det.Patient = &PatientRef{}
	err := row.Scan(&det.ID, &det.PatientID, &det.DoctorID, &det.AppointmentDate, &det.TimeSlot,
		&det.ReasonForVisit, &det.AppointmentNumber, &det.Status, &det.CreatedAt, &det.UpdatedAt,
		&det.Doctor.Name, &det.Doctor.Specialization,
		&det.Patient.FullName, &det.Patient.Email, &det.Patient.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Detail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+detailCols+`,
			COALESCE(d.name, ''), COALESCE(d.specialization, ''), COALESCE(d.profile_photo, '')
		FROM appointment a `+doctorJoin+`
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Detail
	for rows.Next() {
		var det Detail
		det.Doctor = &DoctorRef{}
		err := rows.Scan(&det.ID, &det.PatientID, &det.DoctorID, &det.AppointmentDate, &det.TimeSlot,
			&det.ReasonForVisit, &det.AppointmentNumber, &det.Status, &det.CreatedAt, &det.UpdatedAt,
			&det.Doctor.Name, &det.Doctor.Specialization, &det.Doctor.ProfilePhoto)
		if err != nil {
			return nil, err
		}
		items = append(items, &det)
	}
	return items, rows.Err()
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Detail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+detailCols+`,
			COALESCE(d.name, ''), COALESCE(d.specialization, ''),
			COALESCE(p.full_name, ''), COALESCE(p.email, '')
		FROM appointment a `+doctorJoin+` `+patientJoin+`
		ORDER BY a.appointment_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Detail
	for rows.Next() {
		var det Detail
		det.Doctor = &DoctorRef{}
		det.Patient = &PatientRef{}
		err := rows.Scan(&det.ID, &det.PatientID, &det.DoctorID, &det.AppointmentDate, &det.TimeSlot,
			&det.ReasonForVisit, &det.AppointmentNumber, &det.Status, &det.CreatedAt, &det.UpdatedAt,
			&det.Doctor.Name, &det.Doctor.Specialization,
			&det.Patient.FullName, &det.Patient.Email)
		if err != nil {
			return nil, err
		}
		items = append(items, &det)
	}
	return items, rows.Err()
}

func (r *repoPG) BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT time_slot FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2 AND status <> $3`,
		doctorID, date, StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *repoPG) ExistsActive(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE doctor_id = $1 AND appointment_date = $2 AND time_slot = $3 AND status <> $4
		)`, doctorID, date, slot, StatusCancelled).Scan(&exists)
	return exists, err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `
		UPDATE appointment SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+apptCols, id, status))

	// Reviving a cancelled appointment can collide with a later booking
	// for the same slot; the partial unique index rejects it.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "appointment_slot_active_idx" {
		return nil, ErrSlotTaken
	}
	return a, err
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&n)
	return n, err
}
