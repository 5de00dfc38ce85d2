package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRoomRequest represents room creation input
type CreateRoomRequest struct {
	RoomNumber  string   `json:"room_number" binding:"required,max=20" example:"A-101"`
	BuildingID  string   `json:"building_id" binding:"required,uuid"`
	FloorNumber int      `json:"floor_number" binding:"required,min=1" example:"1"`
	RoomType    string   `json:"room_type" binding:"required,oneof=single double triple dormitory" example:"double"`
	Capacity    int      `json:"capacity" binding:"required,min=1,max=10" example:"2"`
	RentAmount  float64  `json:"rent_amount" binding:"omitempty,min=0" example:"4500"`
	Amenities   []string `json:"amenities" binding:"omitempty,dive,max=50"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
}

// UpdateRoomRequest represents a partial room update. Capacity changes below
// current occupancy are rejected by the service.
type UpdateRoomRequest struct {
	RoomNumber  *string   `json:"room_number" binding:"omitempty,max=20"`
	FloorNumber *int      `json:"floor_number" binding:"omitempty,min=1"`
	RoomType    *string   `json:"room_type" binding:"omitempty,oneof=single double triple dormitory"`
	Capacity    *int      `json:"capacity" binding:"omitempty,min=1,max=10"`
	Status      *string   `json:"status" binding:"omitempty,oneof=available occupied maintenance reserved"`
	RentAmount  *float64  `json:"rent_amount" binding:"omitempty,min=0"`
	Amenities   *[]string `json:"amenities" binding:"omitempty,dive,max=50"`
	Description *string   `json:"description" binding:"omitempty,max=500"`
}

// RoomFilterRequest holds room listing filters from query parameters
type RoomFilterRequest struct {
	BuildingID  string `form:"building_id" binding:"omitempty,uuid"`
	FloorNumber *int   `form:"floor_number" binding:"omitempty,min=1"`
	RoomType    string `form:"room_type" binding:"omitempty,oneof=single double triple dormitory"`
	Status      string `form:"status" binding:"omitempty,oneof=available occupied maintenance reserved"`
	Search      string `form:"search" binding:"omitempty,max=100"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	BuildingID       uuid.UUID `json:"building_id"`
	BuildingName     string    `json:"building_name,omitempty"`
	RoomNumber       string    `json:"room_number"`
	FloorNumber      int       `json:"floor_number"`
	RoomType         string    `json:"room_type"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"current_occupancy"`
	Status           string    `json:"status"`
	RentAmount       float64   `json:"rent_amount"`
	Amenities        []string  `json:"amenities"`
	Description      *string   `json:"description,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RoomStats aggregates room occupancy figures for dashboards
type RoomStats struct {
	TotalRooms          int `json:"total_rooms"`
	AvailableRooms      int `json:"available_rooms"`
	OccupiedRooms       int `json:"occupied_rooms"`
	MaintenanceRooms    int `json:"maintenance_rooms"`
	TotalCapacity       int `json:"total_capacity"`
	CurrentOccupancy    int `json:"current_occupancy"`
	OccupancyPercentage int `json:"occupancy_percentage"`
}
