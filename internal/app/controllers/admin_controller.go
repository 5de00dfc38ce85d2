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

const adminListDefaultLimit = 10

// AdminController handles administrative endpoints
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// GetDashboard godoc
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (ctrl *AdminController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// GetSystemHealth godoc
// @Summary System health
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/health [get]
func (ctrl *AdminController) GetSystemHealth(c *gin.Context) {
	health := ctrl.adminService.GetSystemHealth(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewSuccessResponse(health))
}

// GetPermissions godoc
// @Summary Permission matrix
// @Description Lists every permission and the roles holding it
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/permissions [get]
func (ctrl *AdminController) GetPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(ctrl.adminService.GetPermissionsMatrix()))
}

// CreateUser godoc
// @Summary Create a user account
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/users [post]
func (ctrl *AdminController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := ctrl.adminService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("User created successfully", services.ProfileToResponse(profile)))
}

// ListUsers godoc
// @Summary List user accounts
// @Tags admin
// @Produce json
// @Param role query string false "Role filter"
// @Param search query string false "Name or email search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c, adminListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	profiles, total, err := ctrl.adminService.ListUsers(c.Request.Context(), c.Query("role"), c.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, services.ProfileToResponse(p))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// GetUser godoc
// @Summary Get a user account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (ctrl *AdminController) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := ctrl.adminService.GetUser(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(services.ProfileToResponse(profile)))
}

// UpdateUser godoc
// @Summary Update a user account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "User fields"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (ctrl *AdminController) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := ctrl.adminService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("User updated successfully", services.ProfileToResponse(profile)))
}

// DeactivateUser godoc
// @Summary Deactivate a user account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (ctrl *AdminController) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := ctrl.adminService.DeactivateUser(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("User deactivated successfully", nil))
}

// CreateStudent godoc
// @Summary Create a student record
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student data"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students [post]
func (ctrl *AdminController) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	student, err := ctrl.adminService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Student created successfully", studentToResponse(student)))
}

// ListStudents godoc
// @Summary List student records
// @Tags admin
// @Produce json
// @Param building_id query string false "Building ID"
// @Param hostel_status query string false "Hostel status"
// @Param search query string false "Name or register number search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students [get]
func (ctrl *AdminController) ListStudents(c *gin.Context) {
	var filterReq dto.StudentFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var buildingID *uuid.UUID
	if filterReq.BuildingID != "" {
		if id, err := uuid.Parse(filterReq.BuildingID); err == nil {
			buildingID = &id
		}
	}

	page, limit := helpers.ParsePaginationParams(c, adminListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	students, total, err := ctrl.adminService.ListStudents(c.Request.Context(), buildingID, filterReq.HostelStatus, filterReq.Search, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, studentToResponse(s))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// GetStudent godoc
// @Summary Get a student record
// @Tags admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students/{id} [get]
func (ctrl *AdminController) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	student, err := ctrl.adminService.GetStudent(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(studentToResponse(student)))
}

// UpdateStudent godoc
// @Summary Update a student record
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student fields"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students/{id} [put]
func (ctrl *AdminController) UpdateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	student, err := ctrl.adminService.UpdateStudent(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Student updated successfully", studentToResponse(student)))
}

// DeleteStudent godoc
// @Summary Delete a student record
// @Tags admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students/{id} [delete]
func (ctrl *AdminController) DeleteStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := ctrl.adminService.DeleteStudent(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Student deleted successfully", nil))
}

// CreateBuilding godoc
// @Summary Create a building
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateBuildingRequest true "Building data"
// @Success 201 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/buildings [post]
func (ctrl *AdminController) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	building, err := ctrl.adminService.CreateBuilding(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Building created successfully", buildingToResponse(building)))
}

// ListBuildings godoc
// @Summary List buildings
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/buildings [get]
func (ctrl *AdminController) ListBuildings(c *gin.Context) {
	buildings, err := ctrl.adminService.ListBuildings(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		responses = append(responses, buildingToResponse(b))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetBuilding godoc
// @Summary Get a building
// @Tags admin
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/buildings/{id} [get]
func (ctrl *AdminController) GetBuilding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	building, err := ctrl.adminService.GetBuilding(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(buildingToResponse(building)))
}

// UpdateBuilding godoc
// @Summary Update a building
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param request body dto.UpdateBuildingRequest true "Building fields"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/buildings/{id} [put]
func (ctrl *AdminController) UpdateBuilding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	building, err := ctrl.adminService.UpdateBuilding(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Building updated successfully", buildingToResponse(building)))
}

// ListEntryLogs godoc
// @Summary List recent gate entry/exit logs
// @Tags admin
// @Produce json
// @Param student_id query string false "Student ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/entry-logs [get]
func (ctrl *AdminController) ListEntryLogs(c *gin.Context) {
	var studentID *uuid.UUID
	if param := c.Query("student_id"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		studentID = &id
	}

	page, limit := helpers.ParsePaginationParams(c, roomListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	logs, total, err := ctrl.adminService.ListEntryLogs(c.Request.Context(), studentID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.EntryLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, dto.EntryLogResponse{
			ID:          l.ID,
			StudentID:   l.StudentID,
			StudentName: l.StudentName,
			EntryType:   string(l.EntryType),
			Location:    l.Location,
			Timestamp:   l.Timestamp,
		})
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// CreateAlert godoc
// @Summary Raise an alert
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateAlertRequest true "Alert data"
// @Success 201 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/alerts [post]
func (ctrl *AdminController) CreateAlert(c *gin.Context) {
	var req dto.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	alert, err := ctrl.adminService.CreateAlert(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Alert created successfully", alertToResponse(alert)))
}

// ListAlerts godoc
// @Summary List alerts
// @Tags admin
// @Produce json
// @Param status query string false "Alert status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/alerts [get]
func (ctrl *AdminController) ListAlerts(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c, adminListDefaultLimit)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	alerts, total, err := ctrl.adminService.ListAlerts(c.Request.Context(), c.Query("status"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, alertToResponse(a))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(responses, helpers.NewPaginationInfo(total, page, limit)))
}

// ResolveAlert godoc
// @Summary Resolve an alert
// @Tags admin
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/alerts/{id}/resolve [post]
func (ctrl *AdminController) ResolveAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := ctrl.adminService.ResolveAlert(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Alert resolved", nil))
}

func studentToResponse(s *models.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:             s.ID,
		RegisterNumber: s.RegisterNumber,
		FullName:       s.FullName,
		Email:          s.Email,
		Phone:          s.Phone,
		HostelStatus:   string(s.HostelStatus),
		RoomNumber:     s.RoomNumber,
		BuildingID:     s.BuildingID,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
	if s.Building != nil {
		resp.BuildingName = s.Building.Name
	}
	return resp
}

func buildingToResponse(b *models.Building) dto.BuildingResponse {
	return dto.BuildingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		TotalFloors: b.TotalFloors,
		TotalRooms:  b.TotalRooms,
		Capacity:    b.Capacity,
		DirectorID:  b.DirectorID,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}
}

func alertToResponse(a *models.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:         a.ID,
		Title:      a.Title,
		Message:    a.Message,
		Severity:   a.Severity,
		Status:     a.Status,
		BuildingID: a.BuildingID,
		CreatedAt:  a.CreatedAt,
	}
}
