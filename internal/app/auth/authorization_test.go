package auth

import (
	"testing"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		role models.RoleType
		perm Permission
		want bool
	}{
		{"admin manages users", models.RoleAdmin, PermUsersManage, true},
		{"warden cannot manage users", models.RoleWarden, PermUsersManage, false},
		{"director manages buildings", models.RoleHostelDirector, PermBuildingsManage, true},
		{"warden cannot manage buildings", models.RoleWarden, PermBuildingsManage, false},
		{"deputy warden manages allotments", models.RoleDeputyWarden, PermAllotmentsManage, true},
		{"assistant warden cannot manage allotments", models.RoleAssistantWarden, PermAllotmentsManage, false},
		{"caretaker works maintenance", models.RoleCaretaker, PermMaintenanceWork, true},
		{"caretaker views dashboard", models.RoleCaretaker, PermDashboardView, true},
		{"caretaker files maintenance", models.RoleCaretaker, PermMaintenanceFile, true},
		{"deputy warden cannot work maintenance", models.RoleDeputyWarden, PermMaintenanceWork, false},
		{"student has no staff permissions", models.RoleStudent, PermDashboardView, false},
		{"student cannot view rooms", models.RoleStudent, PermRoomsView, false},
		{"only admin checks system health", models.RoleHostelDirector, PermSystemHealth, false},
		{"unknown permission denied", models.RoleAdmin, Permission("does.not.exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.perm); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
			}
		})
	}
}

func TestRolesForReturnsCopy(t *testing.T) {
	roles := RolesFor(PermUsersManage)
	if len(roles) != 1 || roles[0] != models.RoleAdmin {
		t.Fatalf("RolesFor(users.manage) = %v, want [admin]", roles)
	}

	// Mutating the returned slice must not corrupt the table
	roles[0] = models.RoleStudent
	if !Allowed(models.RoleAdmin, PermUsersManage) {
		t.Error("mutating RolesFor result changed the permission table")
	}
}

func TestPermissionsMatrix(t *testing.T) {
	entries := PermissionsMatrix()
	if len(entries) != len(permissionTable) {
		t.Fatalf("matrix has %d entries, want %d", len(entries), len(permissionTable))
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Permission == "" {
			t.Error("matrix entry with empty permission name")
		}
		if e.Description == "" {
			t.Errorf("permission %q has no description", e.Permission)
		}
		if len(e.Roles) == 0 {
			t.Errorf("permission %q grants no roles", e.Permission)
		}
		if seen[e.Permission] {
			t.Errorf("permission %q listed twice", e.Permission)
		}
		seen[e.Permission] = true
	}

	// Every admin-facing permission is held by the admin role
	for _, e := range entries {
		found := false
		for _, r := range e.Roles {
			if r == string(models.RoleAdmin) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("permission %q is not granted to admin", e.Permission)
		}
	}
}
