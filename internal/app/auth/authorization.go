package auth

import (
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
)

// Permission names a guarded operation. Route handlers are gated on
// permissions, never on hard-coded role lists.
type Permission string

const (
	PermDashboardView    Permission = "dashboard.view"
	PermUsersManage      Permission = "users.manage"
	PermStudentsView     Permission = "students.view"
	PermStudentsManage   Permission = "students.manage"
	PermBuildingsManage  Permission = "buildings.manage"
	PermRoomsView        Permission = "rooms.view"
	PermRoomsManage      Permission = "rooms.manage"
	PermAllotmentsManage Permission = "allotments.manage"
	PermWaitingView      Permission = "waiting_list.view"
	PermWaitingManage    Permission = "waiting_list.manage"
	PermEntryLogsView    Permission = "entry_logs.view"
	PermAlertsManage     Permission = "alerts.manage"
	PermMaintenanceFile  Permission = "maintenance.file"
	PermMaintenanceWork  Permission = "maintenance.work"
	PermSystemHealth     Permission = "system.health"
)

var allStaff = []models.RoleType{
	models.RoleAdmin,
	models.RoleHostelDirector,
	models.RoleWarden,
	models.RoleDeputyWarden,
	models.RoleAssistantWarden,
	models.RoleCaretaker,
}

// permissionTable maps each permission to the roles holding it. A single
// table keeps the access policy reviewable in one place.
var permissionTable = map[Permission][]models.RoleType{
	PermDashboardView:    allStaff,
	PermUsersManage:      {models.RoleAdmin},
	PermStudentsView:     allStaff,
	PermStudentsManage:   {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden},
	PermBuildingsManage:  {models.RoleAdmin, models.RoleHostelDirector},
	PermRoomsView:        allStaff,
	PermRoomsManage:      {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden},
	PermAllotmentsManage: {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden, models.RoleDeputyWarden},
	PermWaitingView:      allStaff,
	PermWaitingManage:    {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden, models.RoleDeputyWarden},
	PermEntryLogsView:    allStaff,
	PermAlertsManage:     {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden},
	PermMaintenanceFile:  allStaff,
	PermMaintenanceWork:  {models.RoleAdmin, models.RoleHostelDirector, models.RoleWarden, models.RoleCaretaker},
	PermSystemHealth:     {models.RoleAdmin},
}

var permissionDescriptions = map[Permission]string{
	PermDashboardView:    "View the administrative dashboard",
	PermUsersManage:      "Create, update and deactivate user accounts",
	PermStudentsView:     "View student records",
	PermStudentsManage:   "Create, update and remove student records",
	PermBuildingsManage:  "Create and update hostel buildings",
	PermRoomsView:        "View rooms and occupancy",
	PermRoomsManage:      "Create, update and delete rooms",
	PermAllotmentsManage: "Allot, vacate and transfer rooms",
	PermWaitingView:      "View the room waiting list",
	PermWaitingManage:    "Add, cancel and allot waiting list entries",
	PermEntryLogsView:    "View gate entry and exit logs",
	PermAlertsManage:     "Raise and resolve alerts",
	PermMaintenanceFile:  "File maintenance requests",
	PermMaintenanceWork:  "Update and assign maintenance requests",
	PermSystemHealth:     "View system health",
}

// Allowed reports whether a role holds a permission
func Allowed(role models.RoleType, perm Permission) bool {
	for _, r := range permissionTable[perm] {
		if r == role {
			return true
		}
	}
	return false
}

// RolesFor returns the roles holding a permission
func RolesFor(perm Permission) []models.RoleType {
	roles := permissionTable[perm]
	out := make([]models.RoleType, len(roles))
	copy(out, roles)
	return out
}

// PermissionsMatrix renders the full permission table for the admin API
func PermissionsMatrix() []dto.PermissionEntry {
	order := []Permission{
		PermDashboardView, PermUsersManage, PermStudentsView, PermStudentsManage,
		PermBuildingsManage, PermRoomsView, PermRoomsManage, PermAllotmentsManage,
		PermWaitingView, PermWaitingManage, PermEntryLogsView, PermAlertsManage,
		PermMaintenanceFile, PermMaintenanceWork, PermSystemHealth,
	}

	entries := make([]dto.PermissionEntry, 0, len(order))
	for _, perm := range order {
		roles := permissionTable[perm]
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		entries = append(entries, dto.PermissionEntry{
			Permission:  string(perm),
			Description: permissionDescriptions[perm],
			Roles:       names,
		})
	}

	return entries
}
