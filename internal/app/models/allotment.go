package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomAllotment defines the student-room assignment based on the
// 'room_allotments' table. At most one allotment per student may hold
// status=active at any time (enforced by a partial unique index).
type RoomAllotment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	StudentID     uuid.UUID       `json:"studentId" db:"student_id"`
	RoomID        uuid.UUID       `json:"roomId" db:"room_id"`
	AllottedBy    uuid.UUID       `json:"allottedBy" db:"allotted_by"`
	AllotmentDate time.Time       `json:"allotmentDate" db:"allotment_date"`
	VacateDate    *time.Time      `json:"vacateDate,omitempty" db:"vacate_date"`
	Status        AllotmentStatus `json:"status" db:"status"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	Room    *Room    `json:"room,omitempty"`    // Relation, no db tag
}
