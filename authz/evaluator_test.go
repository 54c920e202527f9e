package authz_test

import (
	"testing"

	"github.com/schooltrack/go-console-auth/authz"
	"github.com/schooltrack/go-console-auth/session"
	"github.com/stretchr/testify/require"
)

func userWith(role session.Role, permissions ...string) *session.UserProfile {
	return &session.UserProfile{
		ID:          "user-1",
		Username:    "jdoe",
		Role:        role,
		Permissions: permissions,
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name string
		user *session.UserProfile
		req  authz.Requirement
		want bool
	}{
		{
			name: "absent user is denied",
			user: nil,
			req:  authz.Requirement{},
			want: false,
		},
		{
			name: "no requirements allows any user",
			user: userWith(session.RoleStaff),
			req:  authz.Requirement{},
			want: true,
		},
		{
			name: "role outside the required set is denied regardless of permissions",
			user: userWith(session.RoleTeacher, authz.PermManageStudents),
			req: authz.Requirement{
				Roles:      []session.Role{session.RoleSuperAdmin},
				Permission: authz.PermManageStudents,
			},
			want: false,
		},
		{
			name: "role check alone suffices when no permission is required",
			user: userWith(session.RoleSchoolAdmin),
			req:  authz.Requirement{Roles: []session.Role{session.RoleSchoolAdmin, session.RoleTeacher}},
			want: true,
		},
		{
			name: "required permission held",
			user: userWith(session.RoleSchoolAdmin, authz.PermManageStudents),
			req:  authz.Requirement{Permission: authz.PermManageStudents},
			want: true,
		},
		{
			name: "required permission missing",
			user: userWith(session.RoleSchoolAdmin),
			req:  authz.Requirement{Permission: authz.PermManageStudents},
			want: false,
		},
		{
			name: "alternative permission satisfies the check",
			user: userWith(session.RoleSchoolAdmin, authz.PermViewStudents),
			req: authz.Requirement{
				Permission:    authz.PermManageStudents,
				AltPermission: authz.PermViewStudents,
			},
			want: true,
		},
		{
			name: "neither primary nor alternative held",
			user: userWith(session.RoleSchoolAdmin, authz.PermViewReports),
			req: authz.Requirement{
				Permission:    authz.PermManageStudents,
				AltPermission: authz.PermViewStudents,
			},
			want: false,
		},
		{
			name: "empty alternative never allows by itself",
			user: userWith(session.RoleSchoolAdmin),
			req:  authz.Requirement{Permission: authz.PermManageStudents, AltPermission: ""},
			want: false,
		},
		{
			name: "teacher with record permission passes the attendance view",
			user: userWith(session.RoleTeacher, authz.PermViewAttendanceRecords),
			req: authz.Requirement{
				Roles:         []session.Role{session.RoleSchoolAdmin, session.RoleTeacher, session.RoleStaff},
				Permission:    authz.PermViewAttendance,
				AltPermission: authz.PermViewAttendanceRecords,
			},
			want: true,
		},
		{
			name: "same teacher is denied a super admin view",
			user: userWith(session.RoleTeacher, authz.PermViewAttendanceRecords),
			req:  authz.Requirement{Roles: []session.Role{session.RoleSuperAdmin}},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, authz.CanAccess(tc.user, tc.req))
			// Determinism: asking twice gives the same answer.
			require.Equal(t, tc.want, authz.CanAccess(tc.user, tc.req))
		})
	}
}
