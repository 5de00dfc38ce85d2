package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddToWaitingListRequest adds a student to the room waiting list
type AddToWaitingListRequest struct {
	StudentID           string  `json:"student_id" binding:"required,uuid"`
	PreferredBuildingID *string `json:"preferred_building_id" binding:"omitempty,uuid"`
	PreferredRoomType   *string `json:"preferred_room_type" binding:"omitempty,oneof=single double triple dormitory"`
	PreferredFloor      *int    `json:"preferred_floor" binding:"omitempty,min=1"`
	PriorityScore       int     `json:"priority_score" binding:"omitempty,min=0,max=100"`
	Notes               *string `json:"notes" binding:"omitempty,max=500"`
}

// AllotNextRequest allots the head of the waiting list into the given room
type AllotNextRequest struct {
	RoomID string  `json:"room_id" binding:"required,uuid"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

// WaitingListEntryResponse represents a waiting list entry in API responses
type WaitingListEntryResponse struct {
	ID                  uuid.UUID  `json:"id"`
	StudentID           uuid.UUID  `json:"student_id"`
	StudentName         string     `json:"student_name,omitempty"`
	RegisterNo          string     `json:"register_number,omitempty"`
	PreferredBuildingID *uuid.UUID `json:"preferred_building_id,omitempty"`
	PreferredRoomType   *string    `json:"preferred_room_type,omitempty"`
	PreferredFloor      *int       `json:"preferred_floor,omitempty"`
	PriorityScore       int        `json:"priority_score"`
	RequestDate         time.Time  `json:"request_date"`
	Status              string     `json:"status"`
	Notes               *string    `json:"notes,omitempty"`
}
