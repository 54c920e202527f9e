package authz

// Capability tokens granted by the platform. The server is the authority on
// what a user holds; these names only keep call sites from drifting.
const (
	PermManageSchools         = "ManageSchools"
	PermManageStudents        = "ManageStudents"
	PermViewStudents          = "ViewStudents"
	PermManageTeachers        = "ManageTeachers"
	PermViewTeachers          = "ViewTeachers"
	PermManageStaff           = "ManageStaff"
	PermManageAttendance      = "ManageAttendance"
	PermViewAttendance        = "ViewAttendance"
	PermViewAttendanceRecords = "ViewAttendanceRecords"
	PermManageCameras         = "ManageCameras"
	PermViewCameras           = "ViewCameras"
	PermViewReports           = "ViewReports"
	PermManageSettings        = "ManageSettings"
)
