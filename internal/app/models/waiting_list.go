package models

import (
	"time"

	"github.com/google/uuid"
)

// WaitingListEntry defines a pending room request based on the
// 'waiting_list' table. At most one entry per student may hold
// status=waiting. Service order is priority score descending, then
// request date ascending (FIFO tie-break).
type WaitingListEntry struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	StudentID           uuid.UUID     `json:"studentId" db:"student_id"`
	PreferredBuildingID *uuid.UUID    `json:"preferredBuildingId,omitempty" db:"preferred_building_id"`
	PreferredRoomType   *RoomType     `json:"preferredRoomType,omitempty" db:"preferred_room_type"`
	PreferredFloor      *int          `json:"preferredFloor,omitempty" db:"preferred_floor"`
	PriorityScore       int           `json:"priorityScore" db:"priority_score"`
	RequestDate         time.Time     `json:"requestDate" db:"request_date"`
	Status              WaitingStatus `json:"status" db:"status"`
	Notes               *string       `json:"notes,omitempty" db:"notes"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
}
