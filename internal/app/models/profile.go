package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile defines the staff/student account model based on the 'profiles' table
type Profile struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Email       string     `json:"email" db:"email" example:"warden@hostel.edu"`
	Password    string     `json:"-" db:"password"` // Hashed password (excluded from JSON)
	FullName    string     `json:"fullName" db:"full_name" example:"Jane Doe"`
	Role        RoleType   `json:"role" db:"role" example:"warden"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// StaffAssignment links a staff profile to a building (and optionally floors).
// Used only to gate building-scoped access for non-admin roles.
type StaffAssignment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	StaffID        uuid.UUID `json:"staffId" db:"staff_id"`
	BuildingID     uuid.UUID `json:"buildingId" db:"building_id"`
	FloorNumbers   []int32   `json:"floorNumbers,omitempty" db:"floor_numbers"`
	AssignmentType string    `json:"assignmentType" db:"assignment_type"` // building or floor
	StartDate      time.Time `json:"startDate" db:"start_date"`
	IsActive       bool      `json:"isActive" db:"is_active"`
}
