package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryLog defines a gate entry/exit record based on the 'entry_logs' table.
// Rows are written by the external face-recognition gate service; this API
// only reads them for dashboards and audit listings.
type EntryLog struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	StudentID   *uuid.UUID `json:"studentId,omitempty" db:"student_id"`
	StudentName string     `json:"studentName" db:"student_name"`
	EntryType   EntryType  `json:"entryType" db:"entry_type"`
	Location    string     `json:"location" db:"location"`
	Timestamp   time.Time  `json:"timestamp" db:"timestamp"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Alert defines a security alert based on the 'alerts' table
type Alert struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Message    string     `json:"message" db:"message"`
	Severity   string     `json:"severity" db:"severity"`
	Status     string     `json:"status" db:"status"` // active or resolved
	BuildingID *uuid.UUID `json:"buildingId,omitempty" db:"building_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}
