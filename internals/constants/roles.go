package constants

// Role pengguna aplikasi sekolah.
const (
	RoleDirector = "director"
	RoleTeacher  = "teacher"
	RoleStudent  = "student"
	RoleGuardian = "guardian"
	RoleOffice   = "office"
)

// FeeOperatorRoles boleh menerima pembayaran & mengelola fee structure.
var FeeOperatorRoles = []string{RoleDirector, RoleOffice}

// FeeViewerRoles boleh melihat preview tagihan & kuitansi miliknya.
var FeeViewerRoles = []string{RoleDirector, RoleOffice, RoleTeacher, RoleStudent, RoleGuardian}
