package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceRequest defines a repair/service ticket based on the
// 'maintenance_requests' table
type MaintenanceRequest struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	BuildingID  uuid.UUID  `json:"buildingId" db:"building_id"`
	RoomNumber  string     `json:"roomNumber" db:"room_number"`
	IssueType   string     `json:"issueType" db:"issue_type"` // plumbing, electrical, furniture, cleaning, security, other
	Description string     `json:"description" db:"description"`
	Priority    string     `json:"priority" db:"priority"` // low, medium, high, urgent
	Status      string     `json:"status" db:"status"`     // pending, in_progress, completed, cancelled
	RequestedBy uuid.UUID  `json:"requestedBy" db:"requested_by"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty" db:"assigned_to"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
