package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateMaintenanceRequest files a new maintenance issue
type CreateMaintenanceRequest struct {
	BuildingID  string  `json:"building_id" binding:"required,uuid"`
	RoomNumber  string  `json:"room_number" binding:"required,max=20"`
	IssueType   string  `json:"issue_type" binding:"required,oneof=electrical plumbing furniture cleaning other"`
	Description string  `json:"description" binding:"required,min=5,max=500"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateMaintenanceRequest updates the status or assignment of an issue
type UpdateMaintenanceRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=pending in_progress resolved cancelled"`
	Priority   *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo *string `json:"assigned_to" binding:"omitempty,uuid"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

// MaintenanceResponse represents a maintenance request in API responses
type MaintenanceResponse struct {
	ID          uuid.UUID  `json:"id"`
	BuildingID  uuid.UUID  `json:"building_id"`
	RoomNumber  string     `json:"room_number"`
	IssueType   string     `json:"issue_type"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	RequestedBy uuid.UUID  `json:"requested_by"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
