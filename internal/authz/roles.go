package authz

// Роли пользователей (хранятся строкой в users.role)
const (
	RoleDirector       = "director"
	RoleDepartmentHead = "department_head"
	RoleEmployee       = "employee"
	RoleAdmin          = "admin"
)

func IsKnownRole(role string) bool {
	switch role {
	case RoleDirector, RoleDepartmentHead, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// IsElevated — роли, которым доступно управление компанией и сотрудниками.
func IsElevated(role string) bool {
	return role == RoleDirector || role == RoleDepartmentHead || role == RoleAdmin
}

func IsDirector(role string) bool {
	return role == RoleDirector || role == RoleAdmin
}

// CanDeleteTask — строгая проверка: директор, руководитель отдела или автор задачи.
func CanDeleteTask(role string, callerID, creatorID int64) bool {
	if IsElevated(role) {
		return true
	}
	return callerID == creatorID
}
