package dto

import (
	"time"

	"github.com/google/uuid"
)

// AllotRoomRequest represents a room allotment request
type AllotRoomRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	RoomID    string  `json:"room_id" binding:"required,uuid"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`
}

// VacateRoomRequest carries the optional closing notes for a vacate.
// The allotment is addressed by the URL path.
type VacateRoomRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

// TransferRoomRequest moves the student on an active allotment to a new room
type TransferRoomRequest struct {
	NewRoomID string  `json:"new_room_id" binding:"required,uuid"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`
}

// AllotmentResponse represents a room allotment in API responses
type AllotmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	StudentID     uuid.UUID  `json:"student_id"`
	StudentName   string     `json:"student_name,omitempty"`
	RegisterNo    string     `json:"register_number,omitempty"`
	RoomID        uuid.UUID  `json:"room_id"`
	RoomNumber    string     `json:"room_number,omitempty"`
	AllottedBy    uuid.UUID  `json:"allotted_by"`
	AllotmentDate time.Time  `json:"allotment_date"`
	VacateDate    *time.Time `json:"vacate_date,omitempty"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AllotmentFilterRequest holds allotment listing filters
type AllotmentFilterRequest struct {
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=active vacated transferred"`
}
