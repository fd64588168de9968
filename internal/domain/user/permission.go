package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Form records
	PermissionRecordViewOwn Permission = "record.view_own"
	PermissionRecordCreate  Permission = "record.create"
	PermissionRecordViewAll Permission = "record.view_all"
	PermissionRecordApprove Permission = "record.approve"
	PermissionRecordDelete  Permission = "record.delete"

	// Time sheets
	PermissionTimeSheetViewOwn Permission = "timesheet.view_own"
	PermissionTimeSheetCreate  Permission = "timesheet.create"
	PermissionTimeSheetViewAll Permission = "timesheet.view_all"
	PermissionTimeSheetApprove Permission = "timesheet.approve"
	PermissionTimeSheetDelete  Permission = "timesheet.delete"

	// Exports
	PermissionExportPDF Permission = "export.pdf"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRecordViewOwn,
		PermissionRecordCreate,
		PermissionRecordViewAll,
		PermissionRecordApprove,
		PermissionRecordDelete,
		PermissionTimeSheetViewOwn,
		PermissionTimeSheetCreate,
		PermissionTimeSheetViewAll,
		PermissionTimeSheetApprove,
		PermissionTimeSheetDelete,
		PermissionExportPDF,
		PermissionUserManage,
	},
	RoleSupervisor: {
		// Supervisor can view, approve and delete any record
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRecordViewOwn,
		PermissionRecordCreate,
		PermissionRecordViewAll,
		PermissionRecordApprove,
		PermissionRecordDelete,
		PermissionTimeSheetViewOwn,
		PermissionTimeSheetCreate,
		PermissionTimeSheetViewAll,
		PermissionTimeSheetApprove,
		PermissionTimeSheetDelete,
		PermissionExportPDF,
	},
	RoleTechnician: {
		// Technicians work on their own records only
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRecordViewOwn,
		PermissionRecordCreate,
		PermissionTimeSheetViewOwn,
		PermissionTimeSheetCreate,
		PermissionExportPDF,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
