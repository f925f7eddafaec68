package model

import "time"

// AppointmentType categorizes a grid entry.
type AppointmentType string

const (
	TypeReservation AppointmentType = "reservation"
	TypeGeneral     AppointmentType = "general"
	TypeLeave       AppointmentType = "leave"
)

// DateFormat is the storage format for appointment dates.
const DateFormat = "2006-01-02"

type Appointment struct {
	ID            string          `json:"id,omitempty"`
	DateIndex     int             `json:"date_index"` // ordinal of the visible date column
	Date          string          `json:"date"`       // YYYY-MM-DD
	StaffID       string          `json:"staff_id"`
	StaffName     string          `json:"staff_name"`  // snapshot at creation/edit time
	StaffColor    string          `json:"staff_color"` // snapshot at creation/edit time
	StartTime     string          `json:"start_time"`  // "HH:MM"
	EndTime       string          `json:"end_time"`    // "HH:MM", strictly after StartTime
	Title         string          `json:"title"`
	Notes         string          `json:"notes,omitempty"`
	Type          AppointmentType `json:"type"`
	PatientName   string          `json:"patient_name,omitempty"`
	PatientNumber string          `json:"patient_number,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Selection is a committed drag region resolved against the grid axes.
// It is transient and never persisted.
type Selection struct {
	DateIndex      int    `json:"date_index"`
	StaffIndex     int    `json:"staff_index"`
	StartTimeIndex int    `json:"start_time_index"`
	EndTimeIndex   int    `json:"end_time_index"`
	Date           string `json:"date"`
	StaffID        string `json:"staff_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// Appointment shapes the selection into a create candidate. Staff name and
// color are resolved later, at save time.
func (s Selection) Appointment(title string, typ AppointmentType) Appointment {
	return Appointment{
		DateIndex: s.DateIndex,
		Date:      s.Date,
		StaffID:   s.StaffID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Title:     title,
		Type:      typ,
	}
}
