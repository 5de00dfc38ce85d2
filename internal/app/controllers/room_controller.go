package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/repositories"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/services"
	"github.com/Sujith8257/hostel-ms-sub000/internal/middleware"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/helpers"
)

// Room listings default to a larger page than admin listings
const roomListDefaultLimit = 50

// RoomController handles room, allotment and waiting list endpoints
type RoomController struct {
	roomService services.RoomService
	logger      zerolog.Logger
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService, logger zerolog.Logger) *RoomController {
	return &RoomController{
		roomService: roomService,
		logger:      logger,
	}
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms [post]
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	room, err := ctrl.roomService.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Room created successfully", roomToResponse(room)))
}

// ListRooms godoc
// @Summary List rooms
// @Description Lists rooms with optional building, floor, type, status and search filters
// @Tags rooms
// @Produce json
// @Param building_id query string false "Building ID"
// @Param floor_number query int false "Floor number"
// @Param room_type query string false "Room type"
// @Param status query string false "Room status"
// @Param search query string false "Room number search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms [get]
func (ctrl *RoomController) ListRooms(c *gin.Context) {
	var filterReq dto.RoomFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := repositories.RoomFilter{
		RoomType: filterReq.RoomType,
		Status:   filterReq.Status,
		Search:   filterReq.Search,
	}
	if filterReq.BuildingID != "" {
		buildingID, err := uuid.Parse(filterReq.BuildingID)
		if err == nil {
			filter.BuildingID = &buildingID
		}
	}
	filter.FloorNumber = filterReq.FloorNumber

	page, limit := helpers.ParsePaginationParams(c, roomListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	rooms, total, err := ctrl.roomService.ListRooms(c.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, roomToResponse(room))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// ListAvailableRooms godoc
// @Summary List rooms with spare capacity
// @Tags rooms
// @Produce json
// @Param building_id query string false "Building ID"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/available [get]
func (ctrl *RoomController) ListAvailableRooms(c *gin.Context) {
	var buildingID *uuid.UUID
	if param := c.Query("building_id"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		buildingID = &id
	}

	rooms, err := ctrl.roomService.ListAvailableRooms(c.Request.Context(), buildingID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, roomToResponse(room))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetRoomStats godoc
// @Summary Room occupancy statistics
// @Tags rooms
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/stats [get]
func (ctrl *RoomController) GetRoomStats(c *gin.Context) {
	stats, err := ctrl.roomService.GetRoomStats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// GetRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/{id} [get]
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	room, err := ctrl.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(roomToResponse(room)))
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Room fields"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/{id} [put]
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	room, err := ctrl.roomService.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Room updated successfully", roomToResponse(room)))
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := ctrl.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Room deleted successfully", nil))
}

// AllotRoom godoc
// @Summary Allot a room to a student
// @Tags allotments
// @Accept json
// @Produce json
// @Param request body dto.AllotRoomRequest true "Allotment data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/allotments [post]
func (ctrl *RoomController) AllotRoom(c *gin.Context) {
	var req dto.AllotRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	allottedBy := middleware.MustGetProfileID(c)

	allotment, err := ctrl.roomService.AllotRoom(c.Request.Context(), studentID, roomID, allottedBy, req.Notes)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Room allotted successfully", allotmentToResponse(allotment)))
}

// VacateRoom godoc
// @Summary Vacate an active room allotment
// @Tags allotments
// @Accept json
// @Produce json
// @Param id path string true "Allotment ID"
// @Param request body dto.VacateRoomRequest false "Vacate data"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/allotments/{id}/vacate [put]
func (ctrl *RoomController) VacateRoom(c *gin.Context) {
	allotmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	// Body is optional on vacate
	var req dto.VacateRoomRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	allotment, err := ctrl.roomService.VacateRoom(c.Request.Context(), allotmentID, req.Notes)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Room vacated successfully", allotmentToResponse(allotment)))
}

// TransferRoom godoc
// @Summary Transfer an active allotment to a new room
// @Tags allotments
// @Accept json
// @Produce json
// @Param id path string true "Allotment ID"
// @Param request body dto.TransferRoomRequest true "Transfer data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/allotments/{id}/transfer [put]
func (ctrl *RoomController) TransferRoom(c *gin.Context) {
	allotmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.TransferRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	newRoomID, err := uuid.Parse(req.NewRoomID)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	allottedBy := middleware.MustGetProfileID(c)

	allotment, err := ctrl.roomService.TransferRoom(c.Request.Context(), allotmentID, newRoomID, allottedBy, req.Notes)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Room transferred successfully", allotmentToResponse(allotment)))
}

// ListAllotments godoc
// @Summary List room allotments
// @Tags allotments
// @Produce json
// @Param student_id query string false "Student ID"
// @Param room_id query string false "Room ID"
// @Param status query string false "Allotment status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/allotments [get]
func (ctrl *RoomController) ListAllotments(c *gin.Context) {
	var filterReq dto.AllotmentFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := repositories.AllotmentFilter{Status: filterReq.Status}
	if filterReq.StudentID != "" {
		if id, err := uuid.Parse(filterReq.StudentID); err == nil {
			filter.StudentID = &id
		}
	}
	if filterReq.RoomID != "" {
		if id, err := uuid.Parse(filterReq.RoomID); err == nil {
			filter.RoomID = &id
		}
	}

	page, limit := helpers.ParsePaginationParams(c, roomListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	allotments, total, err := ctrl.roomService.ListAllotments(c.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.AllotmentResponse, 0, len(allotments))
	for _, a := range allotments {
		responses = append(responses, allotmentToResponse(a))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// AddToWaitingList godoc
// @Summary Add a student to the waiting list
// @Tags waiting-list
// @Accept json
// @Produce json
// @Param request body dto.AddToWaitingListRequest true "Waiting list data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/waiting-list [post]
func (ctrl *RoomController) AddToWaitingList(c *gin.Context) {
	var req dto.AddToWaitingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	entry, err := ctrl.roomService.AddToWaitingList(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Student added to waiting list", waitingEntryToResponse(entry)))
}

// ListWaitingList godoc
// @Summary List the waiting list in queue order
// @Tags waiting-list
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/waiting-list [get]
func (ctrl *RoomController) ListWaitingList(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c, roomListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	entries, total, err := ctrl.roomService.ListWaitingList(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.WaitingListEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, waitingEntryToResponse(e))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// CancelWaitingEntry godoc
// @Summary Cancel a waiting list entry
// @Tags waiting-list
// @Produce json
// @Param id path string true "Waiting entry ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/waiting-list/{id} [delete]
func (ctrl *RoomController) CancelWaitingEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := ctrl.roomService.CancelWaitingEntry(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Waiting list entry cancelled", nil))
}

// AllotNextFromWaitingList godoc
// @Summary Allot the head of the waiting list into a room
// @Description Picks the waiting student with the highest priority (earliest request on ties) and allots them the given room
// @Tags waiting-list
// @Accept json
// @Produce json
// @Param request body dto.AllotNextRequest true "Target room"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /rooms/waiting-list/allot-next [post]
func (ctrl *RoomController) AllotNextFromWaitingList(c *gin.Context) {
	var req dto.AllotNextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	allottedBy := middleware.MustGetProfileID(c)

	allotment, err := ctrl.roomService.AllotNextFromWaitingList(c.Request.Context(), roomID, allottedBy, req.Notes)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Room allotted from waiting list", allotmentToResponse(allotment)))
}

func roomToResponse(room *models.Room) dto.RoomResponse {
	resp := dto.RoomResponse{
		ID:               room.ID,
		BuildingID:       room.BuildingID,
		RoomNumber:       room.RoomNumber,
		FloorNumber:      room.FloorNumber,
		RoomType:         string(room.RoomType),
		Capacity:         room.Capacity,
		CurrentOccupancy: room.CurrentOccupancy,
		Status:           string(room.Status),
		RentAmount:       room.RentAmount,
		Amenities:        room.Amenities,
		Description:      room.Description,
		IsActive:         room.IsActive,
		CreatedAt:        room.CreatedAt,
		UpdatedAt:        room.UpdatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if room.Building != nil {
		resp.BuildingName = room.Building.Name
	}
	return resp
}

func allotmentToResponse(a *models.RoomAllotment) dto.AllotmentResponse {
	resp := dto.AllotmentResponse{
		ID:            a.ID,
		StudentID:     a.StudentID,
		RoomID:        a.RoomID,
		AllottedBy:    a.AllottedBy,
		AllotmentDate: a.AllotmentDate,
		VacateDate:    a.VacateDate,
		Status:        string(a.Status),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}
	if a.Student != nil {
		resp.StudentName = a.Student.FullName
		resp.RegisterNo = a.Student.RegisterNumber
	}
	if a.Room != nil {
		resp.RoomNumber = a.Room.RoomNumber
	}
	return resp
}

func waitingEntryToResponse(e *models.WaitingListEntry) dto.WaitingListEntryResponse {
	resp := dto.WaitingListEntryResponse{
		ID:                  e.ID,
		StudentID:           e.StudentID,
		PreferredBuildingID: e.PreferredBuildingID,
		PreferredFloor:      e.PreferredFloor,
		PriorityScore:       e.PriorityScore,
		RequestDate:         e.RequestDate,
		Status:              string(e.Status),
		Notes:               e.Notes,
	}
	if e.PreferredRoomType != nil {
		roomType := string(*e.PreferredRoomType)
		resp.PreferredRoomType = &roomType
	}
	if e.Student != nil {
		resp.StudentName = e.Student.FullName
		resp.RegisterNo = e.Student.RegisterNumber
	}
	return resp
}
