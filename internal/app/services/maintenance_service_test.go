package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

type fakeMaintenanceStore struct {
	requests map[uuid.UUID]*models.MaintenanceRequest
}

func newFakeMaintenanceStore() *fakeMaintenanceStore {
	return &fakeMaintenanceStore{requests: make(map[uuid.UUID]*models.MaintenanceRequest)}
}

func (f *fakeMaintenanceStore) Create(_ context.Context, req *models.MaintenanceRequest) error {
	req.ID = uuid.New()
	if req.Status == "" {
		req.Status = "pending"
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeMaintenanceStore) GetByID(_ context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrMaintenanceNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeMaintenanceStore) List(_ context.Context, buildingID *uuid.UUID, status string, _ uint64, _ int) ([]*models.MaintenanceRequest, int64, error) {
	var out []*models.MaintenanceRequest
	for _, req := range f.requests {
		if buildingID != nil && req.BuildingID != *buildingID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaintenanceStore) Update(_ context.Context, req *models.MaintenanceRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return apperrors.ErrMaintenanceNotFound
	}
	f.requests[req.ID] = req
	return nil
}

type maintenanceServiceFixture struct {
	svc        MaintenanceService
	store      *fakeMaintenanceStore
	buildings  *fakeBuildingReader
	buildingID uuid.UUID
}

func newMaintenanceServiceFixture() *maintenanceServiceFixture {
	f := &maintenanceServiceFixture{
		store:     newFakeMaintenanceStore(),
		buildings: &fakeBuildingReader{buildings: make(map[uuid.UUID]*models.Building)},
	}
	f.buildingID = uuid.New()
	f.buildings.buildings[f.buildingID] = &models.Building{ID: f.buildingID, Name: "Block A"}
	f.svc = NewMaintenanceService(f.store, f.buildings, zerolog.Nop())
	return f
}

func TestCreateMaintenanceRequestDefaultsPriority(t *testing.T) {
	f := newMaintenanceServiceFixture()
	requestedBy := uuid.New()

	request, err := f.svc.CreateRequest(context.Background(), requestedBy, &dto.CreateMaintenanceRequest{
		BuildingID:  f.buildingID.String(),
		RoomNumber:  "204",
		IssueType:   "plumbing",
		Description: "Leaking tap in the common washroom",
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	if request.Priority != "medium" {
		t.Errorf("priority = %q, want medium default", request.Priority)
	}
	if request.RequestedBy != requestedBy {
		t.Errorf("requestedBy = %s, want %s", request.RequestedBy, requestedBy)
	}
	if request.Status != "pending" {
		t.Errorf("status = %q, want pending", request.Status)
	}
}

func TestCreateMaintenanceRequestKeepsExplicitPriority(t *testing.T) {
	f := newMaintenanceServiceFixture()

	request, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
		BuildingID:  f.buildingID.String(),
		RoomNumber:  "110",
		IssueType:   "electrical",
		Description: "Sparking socket near the study table",
		Priority:    "urgent",
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}
	if request.Priority != "urgent" {
		t.Errorf("priority = %q, want urgent", request.Priority)
	}
}

func TestCreateMaintenanceRequestInvalidBuildingID(t *testing.T) {
	f := newMaintenanceServiceFixture()

	_, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
		BuildingID:  "not-a-uuid",
		RoomNumber:  "204",
		IssueType:   "plumbing",
		Description: "Leaking tap",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("CreateRequest error = %v, want ErrBadRequest", err)
	}
}

func TestCreateMaintenanceRequestUnknownBuilding(t *testing.T) {
	f := newMaintenanceServiceFixture()

	_, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
		BuildingID:  uuid.New().String(),
		RoomNumber:  "204",
		IssueType:   "plumbing",
		Description: "Leaking tap",
	})
	if !errors.Is(err, apperrors.ErrBuildingNotFound) {
		t.Fatalf("CreateRequest error = %v, want ErrBuildingNotFound", err)
	}
}

func TestUpdateMaintenanceRequest(t *testing.T) {
	f := newMaintenanceServiceFixture()
	created, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
		BuildingID:  f.buildingID.String(),
		RoomNumber:  "204",
		IssueType:   "furniture",
		Description: "Broken chair leg",
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	status := "in_progress"
	assignee := uuid.New().String()
	updated, err := f.svc.UpdateRequest(context.Background(), created.ID, &dto.UpdateMaintenanceRequest{
		Status:     &status,
		AssignedTo: &assignee,
	})
	if err != nil {
		t.Fatalf("UpdateRequest returned error: %v", err)
	}

	if updated.Status != "in_progress" {
		t.Errorf("status = %q, want in_progress", updated.Status)
	}
	if updated.AssignedTo == nil || updated.AssignedTo.String() != assignee {
		t.Errorf("assignedTo = %v, want %s", updated.AssignedTo, assignee)
	}
	// Fields not in the update request are untouched
	if updated.Priority != "medium" {
		t.Errorf("priority = %q, want medium", updated.Priority)
	}
}

func TestUpdateMaintenanceRequestInvalidAssignee(t *testing.T) {
	f := newMaintenanceServiceFixture()
	created, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
		BuildingID:  f.buildingID.String(),
		RoomNumber:  "204",
		IssueType:   "cleaning",
		Description: "Corridor needs deep cleaning",
	})
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	assignee := "not-a-uuid"
	_, err = f.svc.UpdateRequest(context.Background(), created.ID, &dto.UpdateMaintenanceRequest{
		AssignedTo: &assignee,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("UpdateRequest error = %v, want ErrBadRequest", err)
	}
}

func TestUpdateMaintenanceRequestNotFound(t *testing.T) {
	f := newMaintenanceServiceFixture()

	status := "resolved"
	_, err := f.svc.UpdateRequest(context.Background(), uuid.New(), &dto.UpdateMaintenanceRequest{Status: &status})
	if !errors.Is(err, apperrors.ErrMaintenanceNotFound) {
		t.Fatalf("UpdateRequest error = %v, want ErrMaintenanceNotFound", err)
	}
}

func TestListMaintenanceRequestsFiltersByStatus(t *testing.T) {
	f := newMaintenanceServiceFixture()
	for _, desc := range []string{"Leaking tap", "Flickering tube light"} {
		if _, err := f.svc.CreateRequest(context.Background(), uuid.New(), &dto.CreateMaintenanceRequest{
			BuildingID:  f.buildingID.String(),
			RoomNumber:  "204",
			IssueType:   "other",
			Description: desc,
		}); err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
	}

	requests, total, err := f.svc.ListRequests(context.Background(), nil, "pending", 0, 10)
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if total != 2 || len(requests) != 2 {
		t.Errorf("list returned %d/%d requests, want 2", len(requests), total)
	}

	requests, total, err = f.svc.ListRequests(context.Background(), nil, "resolved", 0, 10)
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if total != 0 || len(requests) != 0 {
		t.Errorf("resolved filter returned %d/%d requests, want 0", len(requests), total)
	}
}
