// Package store implements the persistence collaborator behind the grid.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"medigrid/internal/model"
)

// DB wraps sql.DB for appointment persistence.
type DB struct {
	*sql.DB
}

// Open opens the database at path and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			date_index INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			staff_id TEXT NOT NULL,
			staff_name TEXT,
			staff_color TEXT,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			title TEXT,
			notes TEXT,
			type TEXT NOT NULL DEFAULT 'general',
			patient_name TEXT,
			patient_number TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_staff ON appointments(staff_id, date)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// Create inserts the appointment and returns the persisted record with a
// server-assigned id and timestamps.
func (db *DB) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, date_index, date, staff_id, staff_name, staff_color,
			start_time, end_time, title, notes, type, patient_name, patient_number,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DateIndex, a.Date, a.StaffID, a.StaffName, a.StaffColor,
		a.StartTime, a.EndTime, a.Title, a.Notes, string(a.Type), a.PatientName, a.PatientNumber,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return a, nil
}

// Update replaces the full record; there are no partial patch semantics.
func (db *DB) Update(ctx context.Context, a model.Appointment) error {
	a.UpdatedAt = time.Now()
	res, err := db.ExecContext(ctx, `
		UPDATE appointments SET
			date_index = ?, date = ?, staff_id = ?, staff_name = ?, staff_color = ?,
			start_time = ?, end_time = ?, title = ?, notes = ?, type = ?,
			patient_name = ?, patient_number = ?, updated_at = ?
		WHERE id = ?`,
		a.DateIndex, a.Date, a.StaffID, a.StaffName, a.StaffColor,
		a.StartTime, a.EndTime, a.Title, a.Notes, string(a.Type),
		a.PatientName, a.PatientNumber, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update appointment %s: %w", a.ID, sql.ErrNoRows)
	}
	return nil
}

// Delete removes the appointment by id.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM appointments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete appointment %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// FetchAll returns all appointments ordered by date and start time.
func (db *DB) FetchAll(ctx context.Context) ([]model.Appointment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date_index, date, staff_id, staff_name, staff_color,
		       start_time, end_time, title, notes, type, patient_name, patient_number,
		       created_at, updated_at
		FROM appointments
		ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		var apptType string
		var staffName, staffColor, title, notes, patientName, patientNumber sql.NullString
		if err := rows.Scan(
			&a.ID, &a.DateIndex, &a.Date, &a.StaffID, &staffName, &staffColor,
			&a.StartTime, &a.EndTime, &title, &notes, &apptType, &patientName, &patientNumber,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.StaffName = staffName.String
		a.StaffColor = staffColor.String
		a.Title = title.String
		a.Notes = notes.String
		a.PatientName = patientName.String
		a.PatientNumber = patientNumber.String
		a.Type = model.AppointmentType(apptType)
		out = append(out, a)
	}
	return out, rows.Err()
}
