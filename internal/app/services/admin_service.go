package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/validation"
)

// AdminService defines the interface for administrative operations
type AdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	GetSystemHealth(ctx context.Context) *dto.SystemHealth
	GetPermissionsMatrix() []dto.PermissionEntry

	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.Profile, error)
	ListUsers(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.Profile, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.Profile, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error

	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	ListStudents(ctx context.Context, buildingID *uuid.UUID, hostelStatus, search string, offset uint64, limit int) ([]*models.Student, int64, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	CreateBuilding(ctx context.Context, req *dto.CreateBuildingRequest) (*models.Building, error)
	ListBuildings(ctx context.Context) ([]*models.Building, error)
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
	UpdateBuilding(ctx context.Context, id uuid.UUID, req *dto.UpdateBuildingRequest) (*models.Building, error)

	ListEntryLogs(ctx context.Context, studentID *uuid.UUID, offset uint64, limit int) ([]*models.EntryLog, int64, error)
	CreateAlert(ctx context.Context, req *dto.CreateAlertRequest) (*models.Alert, error)
	ListAlerts(ctx context.Context, status string, offset uint64, limit int) ([]*models.Alert, int64, error)
	ResolveAlert(ctx context.Context, id uuid.UUID) error
}

// adminProfileStore extends the auth profile surface with listing and counts
type adminProfileStore interface {
	profileStore
	List(ctx context.Context, role string, search string, offset uint64, limit int) ([]*models.Profile, int64, error)
	CountStaff(ctx context.Context) (int, error)
}

// studentStore is the full student persistence surface
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	List(ctx context.Context, buildingID *uuid.UUID, hostelStatus string, search string, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (total int, active int, err error)
}

// buildingStore is the full building persistence surface
type buildingStore interface {
	Create(ctx context.Context, building *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context) ([]*models.Building, error)
	Update(ctx context.Context, building *models.Building) error
	Count(ctx context.Context) (int, error)
}

// entryLogStore reads gate logs
type entryLogStore interface {
	ListRecent(ctx context.Context, studentID *uuid.UUID, offset uint64, limit int) ([]*models.EntryLog, int64, error)
	CountToday(ctx context.Context) (int, error)
}

// alertStore handles alerts
type alertStore interface {
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, status string, offset uint64, limit int) ([]*models.Alert, int64, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
}

// staffAssignmentStore records which buildings and floors staff oversee
type staffAssignmentStore interface {
	Create(ctx context.Context, assignment *models.StaffAssignment) error
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.StaffAssignment, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// waitingCounter counts open waiting entries
type waitingCounter interface {
	CountWaiting(ctx context.Context) (int, error)
}

// roomStatsLister reads room rows for occupancy stats
type roomStatsLister interface {
	ListForStats(ctx context.Context) ([]*models.Room, error)
}

// dbPinger checks database connectivity for health reports
type dbPinger interface {
	Ping(ctx context.Context) error
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	profiles    adminProfileStore
	students    studentStore
	buildings   buildingStore
	entryLogs   entryLogStore
	alerts      alertStore
	waiting     waitingCounter
	rooms       roomStatsLister
	assignments staffAssignmentStore
	pinger      dbPinger
	startedAt   time.Time
	logger      zerolog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(profiles adminProfileStore, students studentStore, buildings buildingStore, entryLogs entryLogStore, alerts alertStore, waiting waitingCounter, rooms roomStatsLister, assignments staffAssignmentStore, pinger dbPinger, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		profiles:    profiles,
		students:    students,
		buildings:   buildings,
		entryLogs:   entryLogs,
		alerts:      alerts,
		waiting:     waiting,
		rooms:       rooms,
		assignments: assignments,
		pinger:      pinger,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

// GetDashboardStats aggregates figures across students, rooms, alerts and
// the waiting list. Individual failures degrade to zeros rather than
// failing the whole dashboard.
func (s *adminServiceImpl) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	total, active, err := s.students.Counts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count students for dashboard")
	}
	stats.TotalStudents = total
	stats.ActiveStudents = active

	if count, err := s.buildings.Count(ctx); err == nil {
		stats.TotalBuildings = count
	} else {
		s.logger.Warn().Err(err).Msg("Failed to count buildings for dashboard")
	}

	if count, err := s.profiles.CountStaff(ctx); err == nil {
		stats.TotalStaff = count
	} else {
		s.logger.Warn().Err(err).Msg("Failed to count staff for dashboard")
	}

	if count, err := s.alerts.CountActive(ctx); err == nil {
		stats.ActiveAlerts = count
	} else {
		s.logger.Warn().Err(err).Msg("Failed to count alerts for dashboard")
	}

	if count, err := s.entryLogs.CountToday(ctx); err == nil {
		stats.TodayEntries = count
	} else {
		s.logger.Warn().Err(err).Msg("Failed to count today's entries for dashboard")
	}

	if count, err := s.waiting.CountWaiting(ctx); err == nil {
		stats.WaitingListCount = count
	} else {
		s.logger.Warn().Err(err).Msg("Failed to count waiting list for dashboard")
	}

	if rooms, err := s.rooms.ListForStats(ctx); err == nil {
		stats.RoomStats = ComputeRoomStats(rooms)
	} else {
		s.logger.Warn().Err(err).Msg("Failed to load room stats for dashboard")
	}

	return stats, nil
}

// GetSystemHealth reports database reachability and process uptime
func (s *adminServiceImpl) GetSystemHealth(ctx context.Context) *dto.SystemHealth {
	health := &dto.SystemHealth{
		Status:    "healthy",
		Database:  "up",
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.pinger.Ping(pingCtx); err != nil {
		health.Status = "degraded"
		health.Database = "down"
	}

	return health
}

// GetPermissionsMatrix returns the declarative permission table
func (s *adminServiceImpl) GetPermissionsMatrix() []dto.PermissionEntry {
	return auth.PermissionsMatrix()
}

// wardenRoles are the staff roles that take a building or floor assignment
var wardenRoles = map[models.RoleType]bool{
	models.RoleWarden:          true,
	models.RoleDeputyWarden:    true,
	models.RoleAssistantWarden: true,
	models.RoleCaretaker:       true,
}

// CreateUser creates a staff or student account with the given role.
// Warden-type roles created with a building get a staff assignment row:
// wardens own the whole building, the other roles cover floors.
func (s *adminServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.Profile, error) {
	role := models.RoleType(req.Role)

	var buildingID *uuid.UUID
	if req.BuildingID != nil && wardenRoles[role] {
		parsed, err := uuid.Parse(*req.BuildingID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid building ID")
		}
		if _, err := s.buildings.GetByID(ctx, parsed); err != nil {
			return nil, err
		}
		buildingID = &parsed
	}

	hashed, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}
	if req.Phone != "" {
		profile.Phone = &req.Phone
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	if buildingID != nil {
		assignmentType := "floor"
		if role == models.RoleWarden {
			assignmentType = "building"
		}
		assignment := &models.StaffAssignment{
			StaffID:        profile.ID,
			BuildingID:     *buildingID,
			FloorNumbers:   req.FloorNumbers,
			AssignmentType: assignmentType,
		}
		if err := s.assignments.Create(ctx, assignment); err != nil {
			// The account exists at this point, so a failed assignment
			// is reported but does not fail the request.
			s.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to create staff assignment")
		}
	}

	s.logger.Info().Str("email", req.Email).Str("role", req.Role).Msg("User account created by admin")
	return profile, nil
}

// ListUsers retrieves accounts with optional role filter
func (s *adminServiceImpl) ListUsers(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.Profile, int64, error) {
	if role != "" && !models.IsValidRole(role) {
		return nil, 0, apperrors.NewBadRequestError("Invalid role filter")
	}
	return s.profiles.List(ctx, role, search, offset, limit)
}

// GetUser retrieves an account by ID
func (s *adminServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// UpdateUser applies a partial account update
func (s *adminServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Role != nil {
		profile.Role = models.RoleType(*req.Role)
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// DeactivateUser disables an account without deleting it and ends any
// staff assignments the account still holds
func (s *adminServiceImpl) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return err
	}

	profile.IsActive = false
	if err := s.profiles.Update(ctx, profile); err != nil {
		return err
	}

	assignments, err := s.assignments.ListByStaff(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("userId", id.String()).Msg("Failed to list staff assignments on deactivation")
		return nil
	}
	for _, assignment := range assignments {
		if err := s.assignments.Deactivate(ctx, assignment.ID); err != nil {
			s.logger.Warn().Err(err).Str("assignmentId", assignment.ID.String()).Msg("Failed to deactivate staff assignment")
		}
	}
	return nil
}

// CreateStudent creates a new student record
func (s *adminServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	registerNumber := strings.ToUpper(strings.TrimSpace(req.RegisterNumber))
	if !validation.CompiledPatterns.RegisterNumber.MatchString(registerNumber) {
		return nil, apperrors.NewBadRequestError("Invalid register number format")
	}
	if req.Phone != nil && !validation.CompiledPatterns.Phone.MatchString(*req.Phone) {
		return nil, apperrors.NewBadRequestError("Invalid phone number")
	}

	student := &models.Student{
		RegisterNumber: registerNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		HostelStatus:   models.HostelStatusResident,
		IsActive:       true,
	}
	if req.HostelStatus != "" {
		student.HostelStatus = models.HostelStatus(req.HostelStatus)
	}
	if req.BuildingID != nil {
		buildingID, err := uuid.Parse(*req.BuildingID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid building ID")
		}
		if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
			return nil, err
		}
		student.BuildingID = &buildingID
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("registerNumber", student.RegisterNumber).Msg("Student record created")
	return student, nil
}

// ListStudents retrieves students with filters
func (s *adminServiceImpl) ListStudents(ctx context.Context, buildingID *uuid.UUID, hostelStatus, search string, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.students.List(ctx, buildingID, hostelStatus, search, offset, limit)
}

// GetStudent retrieves a student by ID
func (s *adminServiceImpl) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// UpdateStudent applies a partial student update
func (s *adminServiceImpl) UpdateStudent(ctx context.Context, id uuid.UUID, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if req.Phone != nil {
		if !validation.CompiledPatterns.Phone.MatchString(*req.Phone) {
			return nil, apperrors.NewBadRequestError("Invalid phone number")
		}
		student.Phone = req.Phone
	}
	if req.HostelStatus != nil {
		student.HostelStatus = models.HostelStatus(*req.HostelStatus)
	}
	if req.BuildingID != nil {
		buildingID, err := uuid.Parse(*req.BuildingID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid building ID")
		}
		if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
			return nil, err
		}
		student.BuildingID = &buildingID
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent soft-deletes a student record
func (s *adminServiceImpl) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return s.students.Delete(ctx, id)
}

// CreateBuilding creates a new hostel building
func (s *adminServiceImpl) CreateBuilding(ctx context.Context, req *dto.CreateBuildingRequest) (*models.Building, error) {
	building := &models.Building{
		Name:        req.Name,
		Address:     req.Address,
		TotalFloors: req.TotalFloors,
		IsActive:    true,
	}
	if req.DirectorID != nil {
		directorID, err := uuid.Parse(*req.DirectorID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid director ID")
		}
		if _, err := s.profiles.GetByID(ctx, directorID); err != nil {
			return nil, err
		}
		building.DirectorID = &directorID
	}

	if err := s.buildings.Create(ctx, building); err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", building.Name).Msg("Building created")
	return building, nil
}

// ListBuildings retrieves all buildings
func (s *adminServiceImpl) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	return s.buildings.List(ctx)
}

// GetBuilding retrieves a building by ID
func (s *adminServiceImpl) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	return s.buildings.GetByID(ctx, id)
}

// UpdateBuilding applies a partial building update
func (s *adminServiceImpl) UpdateBuilding(ctx context.Context, id uuid.UUID, req *dto.UpdateBuildingRequest) (*models.Building, error) {
	building, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		building.Name = *req.Name
	}
	if req.Address != nil {
		building.Address = req.Address
	}
	if req.TotalFloors != nil {
		building.TotalFloors = *req.TotalFloors
	}
	if req.DirectorID != nil {
		directorID, err := uuid.Parse(*req.DirectorID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid director ID")
		}
		if _, err := s.profiles.GetByID(ctx, directorID); err != nil {
			return nil, err
		}
		building.DirectorID = &directorID
	}
	if req.IsActive != nil {
		building.IsActive = *req.IsActive
	}

	if err := s.buildings.Update(ctx, building); err != nil {
		return nil, err
	}

	return building, nil
}

// ListEntryLogs retrieves recent gate entry/exit logs
func (s *adminServiceImpl) ListEntryLogs(ctx context.Context, studentID *uuid.UUID, offset uint64, limit int) ([]*models.EntryLog, int64, error) {
	return s.entryLogs.ListRecent(ctx, studentID, offset, limit)
}

// CreateAlert raises a new alert
func (s *adminServiceImpl) CreateAlert(ctx context.Context, req *dto.CreateAlertRequest) (*models.Alert, error) {
	alert := &models.Alert{
		Title:    req.Title,
		Message:  req.Message,
		Severity: req.Severity,
	}
	if req.BuildingID != nil {
		buildingID, err := uuid.Parse(*req.BuildingID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid building ID")
		}
		alert.BuildingID = &buildingID
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// ListAlerts retrieves alerts, optionally filtered by status
func (s *adminServiceImpl) ListAlerts(ctx context.Context, status string, offset uint64, limit int) ([]*models.Alert, int64, error) {
	return s.alerts.List(ctx, status, offset, limit)
}

// ResolveAlert marks an alert as resolved
func (s *adminServiceImpl) ResolveAlert(ctx context.Context, id uuid.UUID) error {
	return s.alerts.Resolve(ctx, id)
}
