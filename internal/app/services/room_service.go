package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/repositories"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

// RoomService defines the interface for room, allotment and waiting list
// operations.
type RoomService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context, filter repositories.RoomFilter, offset uint64, limit int) ([]*models.Room, int64, error)
	ListAvailableRooms(ctx context.Context, buildingID *uuid.UUID) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req *dto.UpdateRoomRequest) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	GetRoomStats(ctx context.Context) (*dto.RoomStats, error)

	AllotRoom(ctx context.Context, studentID, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error)
	VacateRoom(ctx context.Context, allotmentID uuid.UUID, notes *string) (*models.RoomAllotment, error)
	TransferRoom(ctx context.Context, allotmentID, newRoomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error)
	ListAllotments(ctx context.Context, filter repositories.AllotmentFilter, offset uint64, limit int) ([]*models.RoomAllotment, int64, error)

	AddToWaitingList(ctx context.Context, req *dto.AddToWaitingListRequest) (*models.WaitingListEntry, error)
	ListWaitingList(ctx context.Context, offset uint64, limit int) ([]*models.WaitingListEntry, int64, error)
	CancelWaitingEntry(ctx context.Context, id uuid.UUID) error
	AllotNextFromWaitingList(ctx context.Context, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error)
}

// roomStore is the room persistence surface the service needs
type roomStore interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context, filter repositories.RoomFilter, offset uint64, limit int) ([]*models.Room, int64, error)
	ListAvailable(ctx context.Context, buildingID *uuid.UUID) ([]*models.Room, error)
	ListForStats(ctx context.Context) ([]*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// allotmentStore is the allotment persistence surface. The three mutation
// methods are transactional and enforce the capacity and single-active
// guards at the database.
type allotmentStore interface {
	GetActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error)
	GetActiveByID(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error)
	List(ctx context.Context, filter repositories.AllotmentFilter, offset uint64, limit int) ([]*models.RoomAllotment, int64, error)
	AllotRoom(ctx context.Context, studentID, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error)
	Vacate(ctx context.Context, allotmentID uuid.UUID, notes *string) (*models.RoomAllotment, error)
	Transfer(ctx context.Context, allotmentID, newRoomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error)
}

// waitingListStore is the waiting list persistence surface
type waitingListStore interface {
	Create(ctx context.Context, entry *models.WaitingListEntry) error
	List(ctx context.Context, offset uint64, limit int) ([]*models.WaitingListEntry, int64, error)
	GetWaitingByStudent(ctx context.Context, studentID uuid.UUID) (*models.WaitingListEntry, error)
	MarkAllotted(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// studentReader is the student lookup surface
type studentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
}

// buildingReader is the building lookup surface
type buildingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
}

// roomServiceImpl implements the RoomService interface
type roomServiceImpl struct {
	rooms      roomStore
	allotments allotmentStore
	waiting    waitingListStore
	students   studentReader
	buildings  buildingReader
	logger     zerolog.Logger
}

// NewRoomService creates a new room service instance
func NewRoomService(rooms roomStore, allotments allotmentStore, waiting waitingListStore, students studentReader, buildings buildingReader, logger zerolog.Logger) RoomService {
	return &roomServiceImpl{
		rooms:      rooms,
		allotments: allotments,
		waiting:    waiting,
		students:   students,
		buildings:  buildings,
		logger:     logger,
	}
}

// CreateRoom creates a new room in an existing building
func (s *roomServiceImpl) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	buildingID, err := uuid.Parse(req.BuildingID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid building ID")
	}

	if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
		return nil, err
	}

	room := &models.Room{
		BuildingID:       buildingID,
		RoomNumber:       req.RoomNumber,
		FloorNumber:      req.FloorNumber,
		RoomType:         models.RoomType(req.RoomType),
		Capacity:         req.Capacity,
		CurrentOccupancy: 0,
		Status:           models.RoomStatusAvailable,
		RentAmount:       req.RentAmount,
		Amenities:        req.Amenities,
		Description:      req.Description,
		IsActive:         true,
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info().Str("roomNumber", room.RoomNumber).Str("buildingID", buildingID.String()).Msg("Room created")
	return room, nil
}

// GetRoom retrieves a room by ID
func (s *roomServiceImpl) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// ListRooms retrieves rooms matching the filter with pagination
func (s *roomServiceImpl) ListRooms(ctx context.Context, filter repositories.RoomFilter, offset uint64, limit int) ([]*models.Room, int64, error) {
	return s.rooms.List(ctx, filter, offset, limit)
}

// ListAvailableRooms retrieves rooms with spare capacity
func (s *roomServiceImpl) ListAvailableRooms(ctx context.Context, buildingID *uuid.UUID) ([]*models.Room, error) {
	return s.rooms.ListAvailable(ctx, buildingID)
}

// UpdateRoom applies a partial room update. The capacity can never be
// lowered below the current occupancy.
func (s *roomServiceImpl) UpdateRoom(ctx context.Context, id uuid.UUID, req *dto.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.FloorNumber != nil {
		room.FloorNumber = *req.FloorNumber
	}
	if req.RoomType != nil {
		room.RoomType = models.RoomType(*req.RoomType)
	}
	if req.Capacity != nil {
		if *req.Capacity < room.CurrentOccupancy {
			return nil, apperrors.NewBadRequestError("Capacity cannot be lower than current occupancy")
		}
		room.Capacity = *req.Capacity
	}
	if req.Status != nil {
		room.Status = models.RoomStatus(*req.Status)
	}
	if req.RentAmount != nil {
		room.RentAmount = *req.RentAmount
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.Description != nil {
		room.Description = req.Description
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// DeleteRoom soft-deletes a room. Rooms with residents cannot be removed.
func (s *roomServiceImpl) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if room.CurrentOccupancy > 0 {
		return apperrors.NewBadRequestError("Room has active occupants and cannot be deleted")
	}

	return s.rooms.Delete(ctx, id)
}

// GetRoomStats aggregates occupancy figures across all active rooms
func (s *roomServiceImpl) GetRoomStats(ctx context.Context) (*dto.RoomStats, error) {
	rooms, err := s.rooms.ListForStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeRoomStats(rooms)
	return &stats, nil
}

// ComputeRoomStats derives occupancy statistics from room rows.
// An empty room set yields zero percent occupancy.
func ComputeRoomStats(rooms []*models.Room) dto.RoomStats {
	var stats dto.RoomStats

	for _, room := range rooms {
		stats.TotalRooms++
		stats.TotalCapacity += room.Capacity
		stats.CurrentOccupancy += room.CurrentOccupancy

		switch room.Status {
		case models.RoomStatusMaintenance:
			stats.MaintenanceRooms++
		case models.RoomStatusOccupied:
			stats.OccupiedRooms++
		default:
			stats.AvailableRooms++
		}
	}

	if stats.TotalCapacity > 0 {
		stats.OccupancyPercentage = int(math.Round(float64(stats.CurrentOccupancy) / float64(stats.TotalCapacity) * 100))
	}

	return stats
}

// AllotRoom assigns a student to a room. Preconditions are checked in a
// fixed order so callers get stable error messages; the transactional
// store closes any race the read-then-write checks leave open.
func (s *roomServiceImpl) AllotRoom(ctx context.Context, studentID, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status == models.RoomStatusMaintenance {
		return nil, apperrors.ErrRoomUnderMaintenance
	}

	if !room.HasVacancy() {
		return nil, apperrors.ErrRoomFull
	}

	if _, err := s.allotments.GetActiveByStudent(ctx, studentID); err == nil {
		return nil, apperrors.ErrDuplicateAllotment
	} else if !errors.Is(err, apperrors.ErrAllotmentNotFound) {
		return nil, err
	}

	allotment, err := s.allotments.AllotRoom(ctx, studentID, roomID, allottedBy, notes)
	if err != nil {
		return nil, err
	}

	// Close the student's waiting entry if one is open
	if entry, err := s.waiting.GetWaitingByStudent(ctx, studentID); err == nil {
		if err := s.waiting.MarkAllotted(ctx, entry.ID); err != nil {
			s.logger.Warn().Err(err).Str("studentID", studentID.String()).Msg("Failed to close waiting entry after allotment")
		}
	} else if !errors.Is(err, apperrors.ErrWaitingEntryNotFound) {
		s.logger.Warn().Err(err).Str("studentID", studentID.String()).Msg("Failed to check waiting entry after allotment")
	}

	s.logger.Info().
		Str("studentID", studentID.String()).
		Str("roomID", roomID.String()).
		Str("allottedBy", allottedBy.String()).
		Msg("Room allotted")

	return allotment, nil
}

// VacateRoom closes an active allotment
func (s *roomServiceImpl) VacateRoom(ctx context.Context, allotmentID uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	allotment, err := s.allotments.Vacate(ctx, allotmentID, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("allotmentID", allotmentID.String()).
		Str("studentID", allotment.StudentID.String()).
		Msg("Room vacated")
	return allotment, nil
}

// TransferRoom moves the student on an active allotment to a new room.
// Both occupancy updates and both allotment rows commit or roll back
// together.
func (s *roomServiceImpl) TransferRoom(ctx context.Context, allotmentID, newRoomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	if _, err := s.allotments.GetActiveByID(ctx, allotmentID); err != nil {
		return nil, err
	}

	newRoom, err := s.rooms.GetByID(ctx, newRoomID)
	if err != nil {
		return nil, err
	}

	if newRoom.Status == models.RoomStatusMaintenance {
		return nil, apperrors.ErrRoomUnderMaintenance
	}

	if !newRoom.HasVacancy() {
		return nil, apperrors.ErrRoomFull
	}

	allotment, err := s.allotments.Transfer(ctx, allotmentID, newRoomID, allottedBy, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("allotmentID", allotmentID.String()).
		Str("newRoomID", newRoomID.String()).
		Msg("Room transferred")

	return allotment, nil
}

// ListAllotments retrieves allotments matching the filter
func (s *roomServiceImpl) ListAllotments(ctx context.Context, filter repositories.AllotmentFilter, offset uint64, limit int) ([]*models.RoomAllotment, int64, error) {
	return s.allotments.List(ctx, filter, offset, limit)
}

// AddToWaitingList queues a student for a room
func (s *roomServiceImpl) AddToWaitingList(ctx context.Context, req *dto.AddToWaitingListRequest) (*models.WaitingListEntry, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid student ID")
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	// A student with a room does not belong on the waiting list
	if _, err := s.allotments.GetActiveByStudent(ctx, studentID); err == nil {
		return nil, apperrors.ErrDuplicateAllotment
	} else if !errors.Is(err, apperrors.ErrAllotmentNotFound) {
		return nil, err
	}

	if _, err := s.waiting.GetWaitingByStudent(ctx, studentID); err == nil {
		return nil, apperrors.ErrAlreadyOnWaitingList
	} else if !errors.Is(err, apperrors.ErrWaitingEntryNotFound) {
		return nil, err
	}

	entry := &models.WaitingListEntry{
		StudentID:     studentID,
		PriorityScore: req.PriorityScore,
		Notes:         req.Notes,
	}

	if req.PreferredBuildingID != nil {
		buildingID, err := uuid.Parse(*req.PreferredBuildingID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid preferred building ID")
		}
		if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
			return nil, err
		}
		entry.PreferredBuildingID = &buildingID
	}
	if req.PreferredRoomType != nil {
		roomType := models.RoomType(*req.PreferredRoomType)
		entry.PreferredRoomType = &roomType
	}
	entry.PreferredFloor = req.PreferredFloor

	if err := s.waiting.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListWaitingList retrieves open waiting entries in queue order
func (s *roomServiceImpl) ListWaitingList(ctx context.Context, offset uint64, limit int) ([]*models.WaitingListEntry, int64, error) {
	return s.waiting.List(ctx, offset, limit)
}

// CancelWaitingEntry removes an entry from the queue
func (s *roomServiceImpl) CancelWaitingEntry(ctx context.Context, id uuid.UUID) error {
	return s.waiting.Cancel(ctx, id)
}

// AllotNextFromWaitingList allots the head of the queue into the given room
func (s *roomServiceImpl) AllotNextFromWaitingList(ctx context.Context, roomID, allottedBy uuid.UUID, notes *string) (*models.RoomAllotment, error) {
	entries, _, err := s.waiting.List(ctx, 0, 100)
	if err != nil {
		return nil, err
	}

	next := pickNextWaiting(entries)
	if next == nil {
		return nil, apperrors.ErrWaitingListEmpty
	}

	allotment, err := s.AllotRoom(ctx, next.StudentID, roomID, allottedBy, notes)
	if err != nil {
		return nil, err
	}

	return allotment, nil
}

// pickNextWaiting selects the queue head: highest priority score first,
// ties broken by the earliest request date.
func pickNextWaiting(entries []*models.WaitingListEntry) *models.WaitingListEntry {
	var next *models.WaitingListEntry
	for _, e := range entries {
		if e.Status != models.WaitingStatusWaiting {
			continue
		}
		if next == nil {
			next = e
			continue
		}
		if e.PriorityScore > next.PriorityScore ||
			(e.PriorityScore == next.PriorityScore && e.RequestDate.Before(next.RequestDate)) {
			next = e
		}
	}
	return next
}
