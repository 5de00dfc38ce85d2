package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student record model based on the 'students' table.
// RoomNumber is a denormalized mirror of the active allotment's room, kept
// in sync inside the same transaction as every allotment transition.
type Student struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	RegisterNumber string       `json:"registerNumber" db:"register_number" example:"21BCE1234"`
	FullName       string       `json:"fullName" db:"full_name"`
	Email          *string      `json:"email,omitempty" db:"email"`
	Phone          *string      `json:"phone,omitempty" db:"phone"`
	HostelStatus   HostelStatus `json:"hostelStatus" db:"hostel_status"`
	RoomNumber     *string      `json:"roomNumber,omitempty" db:"room_number"`
	BuildingID     *uuid.UUID   `json:"buildingId,omitempty" db:"building_id"`
	FaceEmbedding  []byte       `json:"-" db:"face_embedding"` // Opaque blob owned by the external recognition service
	IsActive       bool         `json:"isActive" db:"is_active"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`

	Building *Building `json:"building,omitempty"` // Relation, no db tag
}
