package role

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRole is one row of the read-only user/role association table.
type UserRole struct {
	UserID int64 `json:"userId"`
	RoleID int64 `json:"roleId"`
}
