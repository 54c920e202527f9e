package console_test

import (
	"testing"

	"github.com/schooltrack/go-console-auth/authz"
	"github.com/schooltrack/go-console-auth/console"
	"github.com/schooltrack/go-console-auth/session"
	"github.com/stretchr/testify/require"
)

func menuUser(role session.Role, permissions ...string) *session.UserProfile {
	return &session.UserProfile{
		ID:          "user-1",
		Username:    "jdoe",
		Role:        role,
		Permissions: permissions,
	}
}

func TestVisibleMenu_MatchesEvaluatorAndPreservesOrder(t *testing.T) {
	entries := console.DefaultMenu()

	users := []*session.UserProfile{
		nil,
		menuUser(session.RoleSuperAdmin, authz.PermManageSchools, authz.PermManageTeachers, authz.PermViewReports, authz.PermManageSettings),
		menuUser(session.RoleSchoolAdmin, authz.PermManageStudents, authz.PermManageStaff, authz.PermViewAttendance),
		menuUser(session.RoleTeacher, authz.PermViewAttendanceRecords),
		menuUser(session.RoleStaff),
	}

	for _, user := range users {
		visible := console.VisibleMenu(user, entries)

		// An entry appears iff the evaluator allows it.
		want := make([]console.MenuEntry, 0, len(entries))
		for _, e := range entries {
			if authz.CanAccess(user, e.Requirement()) {
				want = append(want, e)
			}
		}
		require.Equal(t, want, visible)

		// Relative order is the table's order.
		idx := 0
		for _, e := range entries {
			if idx < len(visible) && visible[idx].Path == e.Path {
				idx++
			}
		}
		require.Equal(t, len(visible), idx)
	}
}

func TestVisibleMenu_TeacherSeesAttendanceViaAlternativePermission(t *testing.T) {
	user := menuUser(session.RoleTeacher, authz.PermViewAttendanceRecords)

	visible := console.VisibleMenu(user, console.DefaultMenu())

	paths := make([]string, 0, len(visible))
	for _, e := range visible {
		paths = append(paths, e.Path)
	}
	require.Contains(t, paths, "/attendance", "edit-implies-view: the record permission satisfies the attendance entry")
	require.Contains(t, paths, "/dashboard")
	require.NotContains(t, paths, "/schools")
	require.NotContains(t, paths, "/settings")
}

func TestVisibleMenu_NoUserSeesOnlyNothing(t *testing.T) {
	visible := console.VisibleMenu(nil, console.DefaultMenu())
	require.NotNil(t, visible)
	require.Empty(t, visible)
}

func TestVisibleMenu_RoleOnlyEntryIncludedWithoutPermissions(t *testing.T) {
	user := menuUser(session.RoleStaff)
	visible := console.VisibleMenu(user, console.DefaultMenu())

	require.NotEmpty(t, visible)
	require.Equal(t, "/dashboard", visible[0].Path, "an entry with no permission requirement but a matching role is always included")
}
