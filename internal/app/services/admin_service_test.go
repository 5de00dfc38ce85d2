package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	pkgAuth "github.com/Sujith8257/hostel-ms-sub000/internal/pkg/auth"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

type fakeAdminProfileStore struct {
	*fakeProfileStore
	staffCount int
}

func (f *fakeAdminProfileStore) List(_ context.Context, _ string, _ string, _ uint64, _ int) ([]*models.Profile, int64, error) {
	var out []*models.Profile
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAdminProfileStore) CountStaff(_ context.Context) (int, error) {
	return f.staffCount, nil
}

type fakeStudentStore struct {
	*fakeStudentReader
	total  int
	active int
	err    error
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	student.ID = uuid.New()
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) List(_ context.Context, _ *uuid.UUID, _ string, _ string, _ uint64, _ int) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) Counts(_ context.Context) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.total, f.active, nil
}

type fakeBuildingStore struct {
	*fakeBuildingReader
	count int
}

func (f *fakeBuildingStore) Create(_ context.Context, building *models.Building) error {
	building.ID = uuid.New()
	f.buildings[building.ID] = building
	return nil
}

func (f *fakeBuildingStore) List(_ context.Context) ([]*models.Building, error) {
	var out []*models.Building
	for _, b := range f.buildings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBuildingStore) Update(_ context.Context, building *models.Building) error {
	if _, ok := f.buildings[building.ID]; !ok {
		return apperrors.ErrBuildingNotFound
	}
	f.buildings[building.ID] = building
	return nil
}

func (f *fakeBuildingStore) Count(_ context.Context) (int, error) {
	return f.count, nil
}

type fakeEntryLogStore struct {
	todayCount int
	err        error
}

func (f *fakeEntryLogStore) ListRecent(_ context.Context, _ *uuid.UUID, _ uint64, _ int) ([]*models.EntryLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeEntryLogStore) CountToday(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.todayCount, nil
}

type fakeAlertStore struct {
	alerts      map[uuid.UUID]*models.Alert
	activeCount int
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{alerts: make(map[uuid.UUID]*models.Alert)}
}

func (f *fakeAlertStore) Create(_ context.Context, alert *models.Alert) error {
	alert.ID = uuid.New()
	alert.Status = "active"
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeAlertStore) List(_ context.Context, _ string, _ uint64, _ int) ([]*models.Alert, int64, error) {
	var out []*models.Alert
	for _, a := range f.alerts {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAlertStore) Resolve(_ context.Context, id uuid.UUID) error {
	a, ok := f.alerts[id]
	if !ok || a.Status != "active" {
		return apperrors.NewResourceNotFoundError("Alert not found")
	}
	a.Status = "resolved"
	return nil
}

func (f *fakeAlertStore) CountActive(_ context.Context) (int, error) {
	return f.activeCount, nil
}

type fakeStaffAssignmentStore struct {
	assignments map[uuid.UUID]*models.StaffAssignment
	createErr   error
}

func newFakeStaffAssignmentStore() *fakeStaffAssignmentStore {
	return &fakeStaffAssignmentStore{assignments: make(map[uuid.UUID]*models.StaffAssignment)}
}

func (f *fakeStaffAssignmentStore) Create(_ context.Context, assignment *models.StaffAssignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	assignment.ID = uuid.New()
	assignment.IsActive = true
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeStaffAssignmentStore) ListByStaff(_ context.Context, staffID uuid.UUID) ([]*models.StaffAssignment, error) {
	var out []*models.StaffAssignment
	for _, a := range f.assignments {
		if a.StaffID == staffID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStaffAssignmentStore) Deactivate(_ context.Context, id uuid.UUID) error {
	a, ok := f.assignments[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("Assignment not found")
	}
	a.IsActive = false
	return nil
}

type fakeWaitingCounter struct{ count int }

func (f *fakeWaitingCounter) CountWaiting(_ context.Context) (int, error) {
	return f.count, nil
}

type fakeRoomStatsLister struct{ rooms []*models.Room }

func (f *fakeRoomStatsLister) ListForStats(_ context.Context) ([]*models.Room, error) {
	return f.rooms, nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

type adminServiceFixture struct {
	svc         AdminService
	profiles    *fakeAdminProfileStore
	students    *fakeStudentStore
	buildings   *fakeBuildingStore
	entryLogs   *fakeEntryLogStore
	alerts      *fakeAlertStore
	waiting     *fakeWaitingCounter
	rooms       *fakeRoomStatsLister
	assignments *fakeStaffAssignmentStore
	pinger      *fakePinger
}

func newAdminServiceFixture() *adminServiceFixture {
	f := &adminServiceFixture{
		profiles:    &fakeAdminProfileStore{fakeProfileStore: newFakeProfileStore()},
		students:    &fakeStudentStore{fakeStudentReader: &fakeStudentReader{students: make(map[uuid.UUID]*models.Student)}},
		buildings:   &fakeBuildingStore{fakeBuildingReader: &fakeBuildingReader{buildings: make(map[uuid.UUID]*models.Building)}},
		entryLogs:   &fakeEntryLogStore{},
		alerts:      newFakeAlertStore(),
		waiting:     &fakeWaitingCounter{},
		rooms:       &fakeRoomStatsLister{},
		assignments: newFakeStaffAssignmentStore(),
		pinger:      &fakePinger{},
	}
	f.svc = NewAdminService(f.profiles, f.students, f.buildings, f.entryLogs, f.alerts, f.waiting, f.rooms, f.assignments, f.pinger, zerolog.Nop())
	return f
}

func TestGetDashboardStats(t *testing.T) {
	f := newAdminServiceFixture()
	f.students.total = 120
	f.students.active = 110
	f.buildings.count = 3
	f.profiles.staffCount = 12
	f.alerts.activeCount = 2
	f.entryLogs.todayCount = 85
	f.waiting.count = 7
	f.rooms.rooms = []*models.Room{
		{Capacity: 2, CurrentOccupancy: 2, Status: models.RoomStatusOccupied},
		{Capacity: 2, CurrentOccupancy: 0, Status: models.RoomStatusAvailable},
	}

	stats, err := f.svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats returned error: %v", err)
	}

	if stats.TotalStudents != 120 || stats.ActiveStudents != 110 {
		t.Errorf("student counts = %d/%d, want 120/110", stats.TotalStudents, stats.ActiveStudents)
	}
	if stats.TotalBuildings != 3 {
		t.Errorf("building count = %d, want 3", stats.TotalBuildings)
	}
	if stats.TotalStaff != 12 {
		t.Errorf("staff count = %d, want 12", stats.TotalStaff)
	}
	if stats.ActiveAlerts != 2 {
		t.Errorf("active alerts = %d, want 2", stats.ActiveAlerts)
	}
	if stats.TodayEntries != 85 {
		t.Errorf("today entries = %d, want 85", stats.TodayEntries)
	}
	if stats.WaitingListCount != 7 {
		t.Errorf("waiting count = %d, want 7", stats.WaitingListCount)
	}
	if stats.RoomStats.TotalRooms != 2 || stats.RoomStats.OccupancyPercentage != 50 {
		t.Errorf("room stats = %+v, want 2 rooms at 50%%", stats.RoomStats)
	}
}

func TestGetDashboardStatsDegradesOnFailure(t *testing.T) {
	f := newAdminServiceFixture()
	f.students.err = errors.New("connection refused")
	f.entryLogs.err = errors.New("connection refused")
	f.buildings.count = 4

	stats, err := f.svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats failed instead of degrading: %v", err)
	}
	if stats.TotalStudents != 0 || stats.TodayEntries != 0 {
		t.Errorf("failed metrics = %d/%d, want zeros", stats.TotalStudents, stats.TodayEntries)
	}
	if stats.TotalBuildings != 4 {
		t.Errorf("healthy metric lost: buildings = %d, want 4", stats.TotalBuildings)
	}
}

func TestGetSystemHealth(t *testing.T) {
	f := newAdminServiceFixture()

	health := f.svc.GetSystemHealth(context.Background())
	if health.Status != "healthy" || health.Database != "up" {
		t.Errorf("health = %s/%s, want healthy/up", health.Status, health.Database)
	}

	f.pinger.err = errors.New("connection refused")
	health = f.svc.GetSystemHealth(context.Background())
	if health.Status != "degraded" || health.Database != "down" {
		t.Errorf("health = %s/%s, want degraded/down", health.Status, health.Database)
	}
}

func TestCreateUserAssignsRequestedRole(t *testing.T) {
	f := newAdminServiceFixture()

	profile, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "warden@hostel.edu",
		Password: "password123",
		FullName: "Head Warden",
		Role:     string(models.RoleWarden),
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if profile.Role != models.RoleWarden {
		t.Errorf("role = %q, want warden", profile.Role)
	}
	if !pkgAuth.CheckPassword(profile.Password, "password123") {
		t.Error("stored password hash does not verify")
	}
}

func TestCreateUserWithBuildingCreatesStaffAssignment(t *testing.T) {
	f := newAdminServiceFixture()
	buildingID := uuid.New()
	f.buildings.buildings[buildingID] = &models.Building{ID: buildingID, Name: "Block A", IsActive: true}
	buildingRef := buildingID.String()

	warden, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:      "warden@hostel.edu",
		Password:   "password123",
		FullName:   "Block A Warden",
		Role:       string(models.RoleWarden),
		BuildingID: &buildingRef,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	assignments, err := f.assignments.ListByStaff(context.Background(), warden.ID)
	if err != nil {
		t.Fatalf("ListByStaff returned error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("warden has %d assignments, want 1", len(assignments))
	}
	if assignments[0].BuildingID != buildingID {
		t.Errorf("assignment building = %s, want %s", assignments[0].BuildingID, buildingID)
	}
	if assignments[0].AssignmentType != "building" {
		t.Errorf("warden assignment type = %q, want building", assignments[0].AssignmentType)
	}

	caretaker, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:        "caretaker@hostel.edu",
		Password:     "password123",
		FullName:     "Floor Caretaker",
		Role:         string(models.RoleCaretaker),
		BuildingID:   &buildingRef,
		FloorNumbers: []int32{1, 2},
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	assignments, err = f.assignments.ListByStaff(context.Background(), caretaker.ID)
	if err != nil {
		t.Fatalf("ListByStaff returned error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("caretaker has %d assignments, want 1", len(assignments))
	}
	if assignments[0].AssignmentType != "floor" {
		t.Errorf("caretaker assignment type = %q, want floor", assignments[0].AssignmentType)
	}
	if len(assignments[0].FloorNumbers) != 2 {
		t.Errorf("caretaker floors = %v, want [1 2]", assignments[0].FloorNumbers)
	}
}

func TestCreateUserIgnoresBuildingForNonWardenRoles(t *testing.T) {
	f := newAdminServiceFixture()
	buildingRef := uuid.New().String()

	student, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:      "resident@hostel.edu",
		Password:   "password123",
		FullName:   "Resident Student",
		Role:       string(models.RoleStudent),
		BuildingID: &buildingRef,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if len(f.assignments.assignments) != 0 {
		t.Errorf("student account created %d assignments, want none", len(f.assignments.assignments))
	}
	if student.ID == uuid.Nil {
		t.Error("student profile was not created")
	}
}

func TestCreateUserRejectsUnknownBuilding(t *testing.T) {
	f := newAdminServiceFixture()
	buildingRef := uuid.New().String()

	_, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:      "warden@hostel.edu",
		Password:   "password123",
		FullName:   "Unplaced Warden",
		Role:       string(models.RoleWarden),
		BuildingID: &buildingRef,
	})
	if !errors.Is(err, apperrors.ErrBuildingNotFound) {
		t.Fatalf("CreateUser error = %v, want ErrBuildingNotFound", err)
	}
	if len(f.profiles.byID) != 0 {
		t.Error("profile was created despite unknown building")
	}
}

func TestCreateUserSurvivesAssignmentFailure(t *testing.T) {
	f := newAdminServiceFixture()
	buildingID := uuid.New()
	f.buildings.buildings[buildingID] = &models.Building{ID: buildingID, Name: "Block B", IsActive: true}
	buildingRef := buildingID.String()
	f.assignments.createErr = errors.New("connection refused")

	warden, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:      "warden@hostel.edu",
		Password:   "password123",
		FullName:   "Block B Warden",
		Role:       string(models.RoleWarden),
		BuildingID: &buildingRef,
	})
	if err != nil {
		t.Fatalf("CreateUser failed on assignment error: %v", err)
	}
	if _, ok := f.profiles.byID[warden.ID]; !ok {
		t.Error("profile missing after assignment failure")
	}
}

func TestCreateStudentNormalizesRegisterNumber(t *testing.T) {
	f := newAdminServiceFixture()

	student, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		RegisterNumber: " 20bce1042 ",
		FullName:       "Arun Prasad",
	})
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	if student.RegisterNumber != "20BCE1042" {
		t.Errorf("register number = %q, want trimmed upper-case 20BCE1042", student.RegisterNumber)
	}
	if student.HostelStatus != models.HostelStatusResident {
		t.Errorf("hostel status = %q, want resident default", student.HostelStatus)
	}
}

func TestCreateStudentRejectsMalformedInput(t *testing.T) {
	f := newAdminServiceFixture()

	_, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		RegisterNumber: "ab-12",
		FullName:       "Bad Register Number",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("short register number error = %v, want ErrBadRequest", err)
	}

	phone := "12345"
	_, err = f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		RegisterNumber: "20BCE1042",
		FullName:       "Bad Phone",
		Phone:          &phone,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("short phone error = %v, want ErrBadRequest", err)
	}
}

func TestListUsersRejectsUnknownRole(t *testing.T) {
	f := newAdminServiceFixture()

	_, _, err := f.svc.ListUsers(context.Background(), "superuser", "", 0, 10)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("ListUsers error = %v, want ErrBadRequest", err)
	}
}

func TestDeactivateUser(t *testing.T) {
	f := newAdminServiceFixture()
	buildingID := uuid.New()
	f.buildings.buildings[buildingID] = &models.Building{ID: buildingID, Name: "Block C", IsActive: true}
	buildingRef := buildingID.String()

	profile, err := f.svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:      "leaving@hostel.edu",
		Password:   "password123",
		FullName:   "Leaving Staff",
		Role:       string(models.RoleCaretaker),
		BuildingID: &buildingRef,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if err := f.svc.DeactivateUser(context.Background(), profile.ID); err != nil {
		t.Fatalf("DeactivateUser returned error: %v", err)
	}
	if f.profiles.byID[profile.ID].IsActive {
		t.Error("user still active after deactivation")
	}

	remaining, err := f.assignments.ListByStaff(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("ListByStaff returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d assignments still active after deactivation, want 0", len(remaining))
	}
}

func TestResolveAlert(t *testing.T) {
	f := newAdminServiceFixture()
	alert, err := f.svc.CreateAlert(context.Background(), &dto.CreateAlertRequest{
		Title:    "Water leakage",
		Message:  "Leak on floor 2",
		Severity: "warning",
	})
	if err != nil {
		t.Fatalf("CreateAlert returned error: %v", err)
	}

	if err := f.svc.ResolveAlert(context.Background(), alert.ID); err != nil {
		t.Fatalf("ResolveAlert returned error: %v", err)
	}

	// Resolving twice reports not found
	if err := f.svc.ResolveAlert(context.Background(), alert.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("second ResolveAlert error = %v, want ErrResourceNotFound", err)
	}
}
