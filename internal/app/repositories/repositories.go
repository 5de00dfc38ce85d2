package repositories

import (
	"github.com/Sujith8257/hostel-ms-sub000/internal/db"
)

// Repositories holds every repository instance
type Repositories struct {
	ProfileRepository         *ProfileRepository
	TokenRepository           *TokenRepository
	StudentRepository         *StudentRepository
	BuildingRepository        *BuildingRepository
	RoomRepository            *RoomRepository
	AllotmentRepository       *AllotmentRepository
	WaitingListRepository     *WaitingListRepository
	EntryLogRepository        *EntryLogRepository
	AlertRepository           *AlertRepository
	MaintenanceRepository     *MaintenanceRepository
	StaffAssignmentRepository *StaffAssignmentRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool

	rooms := NewRoomRepository(pool)
	students := NewStudentRepository(pool)

	return &Repositories{
		ProfileRepository:         NewProfileRepository(pool),
		TokenRepository:           NewTokenRepository(pool),
		StudentRepository:         students,
		BuildingRepository:        NewBuildingRepository(pool),
		RoomRepository:            rooms,
		AllotmentRepository:       NewAllotmentRepository(database, rooms, students),
		WaitingListRepository:     NewWaitingListRepository(pool),
		EntryLogRepository:        NewEntryLogRepository(pool),
		AlertRepository:           NewAlertRepository(pool),
		MaintenanceRepository:     NewMaintenanceRepository(pool),
		StaffAssignmentRepository: NewStaffAssignmentRepository(pool),
	}
}
