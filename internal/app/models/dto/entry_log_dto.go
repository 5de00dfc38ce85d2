package dto

import (
	"time"

	"github.com/google/uuid"
)

// EntryLogResponse represents a gate entry or exit event
type EntryLogResponse struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   *uuid.UUID `json:"student_id,omitempty"`
	StudentName string     `json:"student_name"`
	EntryType   string     `json:"entry_type"`
	Location    string     `json:"location"`
	Timestamp   time.Time  `json:"timestamp"`
}

// AlertResponse represents a security or operational alert
type AlertResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Severity   string     `json:"severity"`
	Status     string     `json:"status"`
	BuildingID *uuid.UUID `json:"building_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateAlertRequest raises a new alert
type CreateAlertRequest struct {
	Title      string  `json:"title" binding:"required,min=3,max=100"`
	Message    string  `json:"message" binding:"required,min=3,max=500"`
	Severity   string  `json:"severity" binding:"required,oneof=info warning critical"`
	BuildingID *string `json:"building_id" binding:"omitempty,uuid"`
}
