package console

import (
	"github.com/schooltrack/go-console-auth/authz"
	"github.com/schooltrack/go-console-auth/session"
)

// MenuEntry describes one navigation item: where it goes, what it is called,
// and what the current user must satisfy to see it. The menu is data; one
// generic filter consumes it.
type MenuEntry struct {
	Path          string         `json:"path"`
	Label         string         `json:"label"`
	Permission    string         `json:"-"`
	AltPermission string         `json:"-"`
	Roles         []session.Role `json:"-"`
}

// Requirement converts the entry's declared constraints into the evaluator's
// input.
func (e MenuEntry) Requirement() authz.Requirement {
	return authz.Requirement{
		Roles:         e.Roles,
		Permission:    e.Permission,
		AltPermission: e.AltPermission,
	}
}

// VisibleMenu filters entries down to those the user may access, preserving
// the original order. An empty result means the caller should render its
// "no access" placeholder.
func VisibleMenu(user *session.UserProfile, entries []MenuEntry) []MenuEntry {
	visible := make([]MenuEntry, 0, len(entries))
	for _, e := range entries {
		if authz.CanAccess(user, e.Requirement()) {
			visible = append(visible, e)
		}
	}
	return visible
}

var allRoles = []session.Role{
	session.RoleSuperAdmin,
	session.RoleSchoolAdmin,
	session.RoleTeacher,
	session.RoleStaff,
}

// DefaultMenu is the console's navigation descriptor table.
func DefaultMenu() []MenuEntry {
	return []MenuEntry{
		{
			Path:  "/dashboard",
			Label: "Dashboard",
			Roles: allRoles,
		},
		{
			Path:  "/schools",
			Label: "Schools",
			Roles: []session.Role{session.RoleSuperAdmin},
		},
		{
			Path:          "/students",
			Label:         "Students",
			Permission:    authz.PermManageStudents,
			AltPermission: authz.PermViewStudents,
			Roles:         allRoles,
		},
		{
			Path:          "/teachers",
			Label:         "Teachers",
			Permission:    authz.PermManageTeachers,
			AltPermission: authz.PermViewTeachers,
			Roles:         []session.Role{session.RoleSuperAdmin, session.RoleSchoolAdmin},
		},
		{
			Path:       "/staff",
			Label:      "Staff",
			Permission: authz.PermManageStaff,
			Roles:      []session.Role{session.RoleSuperAdmin, session.RoleSchoolAdmin},
		},
		{
			Path:          "/attendance",
			Label:         "Attendance",
			Permission:    authz.PermViewAttendance,
			AltPermission: authz.PermViewAttendanceRecords,
			Roles:         []session.Role{session.RoleSchoolAdmin, session.RoleTeacher, session.RoleStaff},
		},
		{
			Path:          "/cameras",
			Label:         "Cameras",
			Permission:    authz.PermManageCameras,
			AltPermission: authz.PermViewCameras,
			Roles:         []session.Role{session.RoleSchoolAdmin, session.RoleStaff},
		},
		{
			Path:       "/reports",
			Label:      "Reports",
			Permission: authz.PermViewReports,
			Roles:      []session.Role{session.RoleSuperAdmin, session.RoleSchoolAdmin},
		},
		{
			Path:       "/settings",
			Label:      "Settings",
			Permission: authz.PermManageSettings,
			Roles:      []session.Role{session.RoleSuperAdmin, session.RoleSchoolAdmin},
		},
	}
}
