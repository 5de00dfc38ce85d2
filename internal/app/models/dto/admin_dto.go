package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents admin creation of a staff account.
// BuildingID and FloorNumbers place warden-type roles on a building or
// a set of floors; both are ignored for other roles.
type CreateUserRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	FullName     string  `json:"full_name" binding:"required,min=2,max=100"`
	Role         string  `json:"role" binding:"required,oneof=admin hostel_director warden deputy_warden assistant_warden caretaker student"`
	Phone        string  `json:"phone" binding:"omitempty,len=10,numeric"`
	BuildingID   *string `json:"building_id" binding:"omitempty,uuid"`
	FloorNumbers []int32 `json:"floor_numbers" binding:"omitempty,dive,min=1"`
}

// UpdateUserRequest represents admin update of a user account
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin hostel_director warden deputy_warden assistant_warden caretaker student"`
	Phone    *string `json:"phone" binding:"omitempty,len=10,numeric"`
	IsActive *bool   `json:"is_active"`
}

// CreateStudentRequest represents creation of a student record
type CreateStudentRequest struct {
	RegisterNumber string  `json:"register_number" binding:"required,alphanum,min=6,max=20"`
	FullName       string  `json:"full_name" binding:"required,min=2,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone" binding:"omitempty,len=10,numeric"`
	HostelStatus   string  `json:"hostel_status" binding:"omitempty,oneof=resident day_scholar former_resident"`
	BuildingID     *string `json:"building_id" binding:"omitempty,uuid"`
}

// UpdateStudentRequest represents a partial student record update
type UpdateStudentRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,len=10,numeric"`
	HostelStatus *string `json:"hostel_status" binding:"omitempty,oneof=resident day_scholar former_resident"`
	BuildingID   *string `json:"building_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

// StudentFilterRequest holds student listing filters
type StudentFilterRequest struct {
	BuildingID   string `form:"building_id" binding:"omitempty,uuid"`
	HostelStatus string `form:"hostel_status" binding:"omitempty,oneof=resident day_scholar former_resident"`
	Search       string `form:"search" binding:"omitempty,max=100"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID             uuid.UUID  `json:"id"`
	RegisterNumber string     `json:"register_number"`
	FullName       string     `json:"full_name"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	HostelStatus   string     `json:"hostel_status"`
	RoomNumber     *string    `json:"room_number,omitempty"`
	BuildingID     *uuid.UUID `json:"building_id,omitempty"`
	BuildingName   string     `json:"building_name,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateBuildingRequest represents creation of a hostel building
type CreateBuildingRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	TotalFloors int     `json:"total_floors" binding:"required,min=1,max=50"`
	DirectorID  *string `json:"director_id" binding:"omitempty,uuid"`
}

// UpdateBuildingRequest represents a partial building update
type UpdateBuildingRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	TotalFloors *int    `json:"total_floors" binding:"omitempty,min=1,max=50"`
	DirectorID  *string `json:"director_id" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

// BuildingResponse represents a building in API responses
type BuildingResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Address     *string    `json:"address,omitempty"`
	TotalFloors int        `json:"total_floors"`
	TotalRooms  int        `json:"total_rooms"`
	Capacity    int        `json:"capacity"`
	DirectorID  *uuid.UUID `json:"director_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DashboardStats aggregates figures for the admin dashboard
type DashboardStats struct {
	TotalStudents    int       `json:"total_students"`
	ActiveStudents   int       `json:"active_students"`
	TotalBuildings   int       `json:"total_buildings"`
	TotalStaff       int       `json:"total_staff"`
	ActiveAlerts     int       `json:"active_alerts"`
	TodayEntries     int       `json:"today_entries"`
	RoomStats        RoomStats `json:"room_stats"`
	WaitingListCount int       `json:"waiting_list_count"`
}

// SystemHealth reports runtime health of backing services
type SystemHealth struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// PermissionEntry describes one permission and the roles holding it
type PermissionEntry struct {
	Permission  string   `json:"permission"`
	Description string   `json:"description"`
	Roles       []string `json:"roles"`
}
