package models

import (
	"time"

	"github.com/google/uuid"
)

// Room defines the room model based on the 'rooms' table.
// Invariant: 0 <= CurrentOccupancy <= Capacity. The occupancy counter is
// mutated only through allotment/vacate/transfer transactions, never directly.
type Room struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	BuildingID       uuid.UUID  `json:"buildingId" db:"building_id"`
	RoomNumber       string     `json:"roomNumber" db:"room_number" example:"A-101"`
	FloorNumber      int        `json:"floorNumber" db:"floor_number"`
	RoomType         RoomType   `json:"roomType" db:"room_type"`
	Capacity         int        `json:"capacity" db:"capacity"`
	CurrentOccupancy int        `json:"currentOccupancy" db:"current_occupancy"`
	Status           RoomStatus `json:"status" db:"status"`
	RentAmount       float64    `json:"rentAmount" db:"rent_amount"`
	Amenities        []string   `json:"amenities,omitempty" db:"amenities"`
	Description      *string    `json:"description,omitempty" db:"description"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`

	Building *Building `json:"building,omitempty"` // Relation, no db tag
}

// HasVacancy reports whether another student can be allotted to the room
func (r *Room) HasVacancy() bool {
	return r.CurrentOccupancy < r.Capacity
}
