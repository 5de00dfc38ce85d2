package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

// MaintenanceService defines the interface for maintenance request operations
type MaintenanceService interface {
	CreateRequest(ctx context.Context, requestedBy uuid.UUID, req *dto.CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	ListRequests(ctx context.Context, buildingID *uuid.UUID, status string, offset uint64, limit int) ([]*models.MaintenanceRequest, int64, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, req *dto.UpdateMaintenanceRequest) (*models.MaintenanceRequest, error)
}

// maintenanceStore is the maintenance persistence surface
type maintenanceStore interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	List(ctx context.Context, buildingID *uuid.UUID, status string, offset uint64, limit int) ([]*models.MaintenanceRequest, int64, error)
	Update(ctx context.Context, req *models.MaintenanceRequest) error
}

// maintenanceServiceImpl implements the MaintenanceService interface
type maintenanceServiceImpl struct {
	requests  maintenanceStore
	buildings buildingReader
	logger    zerolog.Logger
}

// NewMaintenanceService creates a new maintenance service instance
func NewMaintenanceService(requests maintenanceStore, buildings buildingReader, logger zerolog.Logger) MaintenanceService {
	return &maintenanceServiceImpl{
		requests:  requests,
		buildings: buildings,
		logger:    logger,
	}
}

// CreateRequest files a new maintenance issue
func (s *maintenanceServiceImpl) CreateRequest(ctx context.Context, requestedBy uuid.UUID, req *dto.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	buildingID, err := uuid.Parse(req.BuildingID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid building ID")
	}

	if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
		return nil, err
	}

	request := &models.MaintenanceRequest{
		BuildingID:  buildingID,
		RoomNumber:  req.RoomNumber,
		IssueType:   req.IssueType,
		Description: req.Description,
		Priority:    req.Priority,
		RequestedBy: requestedBy,
		Notes:       req.Notes,
	}
	if request.Priority == "" {
		request.Priority = "medium"
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("buildingID", buildingID.String()).
		Str("roomNumber", req.RoomNumber).
		Str("issueType", req.IssueType).
		Msg("Maintenance request filed")

	return request, nil
}

// GetRequest retrieves a maintenance request by ID
func (s *maintenanceServiceImpl) GetRequest(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListRequests retrieves maintenance requests with optional filters
func (s *maintenanceServiceImpl) ListRequests(ctx context.Context, buildingID *uuid.UUID, status string, offset uint64, limit int) ([]*models.MaintenanceRequest, int64, error) {
	return s.requests.List(ctx, buildingID, status, offset, limit)
}

// UpdateRequest updates the status, priority, assignee or notes of a request
func (s *maintenanceServiceImpl) UpdateRequest(ctx context.Context, id uuid.UUID, req *dto.UpdateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		request.Status = *req.Status
	}
	if req.Priority != nil {
		request.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		assignedTo, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid assignee ID")
		}
		request.AssignedTo = &assignedTo
	}
	if req.Notes != nil {
		request.Notes = req.Notes
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}
