package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/services"
	"github.com/Sujith8257/hostel-ms-sub000/internal/middleware"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/helpers"
)

// MaintenanceController handles maintenance request endpoints
type MaintenanceController struct {
	maintenanceService services.MaintenanceService
	logger             zerolog.Logger
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(maintenanceService services.MaintenanceService, logger zerolog.Logger) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// CreateRequest godoc
// @Summary File a maintenance request
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Request data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /maintenance [post]
func (ctrl *MaintenanceController) CreateRequest(c *gin.Context) {
	var req dto.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	requestedBy := middleware.MustGetProfileID(c)

	request, err := ctrl.maintenanceService.CreateRequest(c.Request.Context(), requestedBy, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Maintenance request filed", maintenanceToResponse(request)))
}

// ListRequests godoc
// @Summary List maintenance requests
// @Tags maintenance
// @Produce json
// @Param building_id query string false "Building ID"
// @Param status query string false "Request status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /maintenance [get]
func (ctrl *MaintenanceController) ListRequests(c *gin.Context) {
	var buildingID *uuid.UUID
	if param := c.Query("building_id"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		buildingID = &id
	}

	page, limit := helpers.ParsePaginationParams(c, adminListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	requests, total, err := ctrl.maintenanceService.ListRequests(c.Request.Context(), buildingID, c.Query("status"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.MaintenanceResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, maintenanceToResponse(r))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// GetRequest godoc
// @Summary Get a maintenance request
// @Tags maintenance
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /maintenance/{id} [get]
func (ctrl *MaintenanceController) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	request, err := ctrl.maintenanceService.GetRequest(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(maintenanceToResponse(request)))
}

// UpdateRequest godoc
// @Summary Update a maintenance request
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.UpdateMaintenanceRequest true "Request fields"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /maintenance/{id} [put]
func (ctrl *MaintenanceController) UpdateRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	request, err := ctrl.maintenanceService.UpdateRequest(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Maintenance request updated", maintenanceToResponse(request)))
}

func maintenanceToResponse(m *models.MaintenanceRequest) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		ID:          m.ID,
		BuildingID:  m.BuildingID,
		RoomNumber:  m.RoomNumber,
		IssueType:   m.IssueType,
		Description: m.Description,
		Priority:    m.Priority,
		Status:      m.Status,
		RequestedBy: m.RequestedBy,
		AssignedTo:  m.AssignedTo,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
