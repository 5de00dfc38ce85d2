package models

import (
	"time"

	"github.com/google/uuid"
)

// Building defines the hostel building model based on the 'hostel_buildings' table
type Building struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" example:"A Block"`
	Address     *string    `json:"address,omitempty" db:"address"`
	TotalFloors int        `json:"totalFloors" db:"total_floors"`
	TotalRooms  int        `json:"totalRooms" db:"total_rooms"`
	Capacity    int        `json:"capacity" db:"capacity"`
	DirectorID  *uuid.UUID `json:"directorId,omitempty" db:"director_id"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
