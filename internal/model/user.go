package model

// User is an identity in the user directory. Email is the contact identifier
// used for login.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Key returns the user ID.
func (u User) Key() string { return u.ID }

// Role is a directory role.
type Role string

// Roles.
const (
	RoleAdmin           Role = "ADMIN"
	RoleManager         Role = "MANAGER"
	RoleWarehouseKeeper Role = "WAREHOUSE_KEEPER"
	RoleUser            Role = "USER"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleManager, RoleWarehouseKeeper, RoleUser}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleWarehouseKeeper, RoleUser:
		return true
	}
	return false
}

// Label returns a human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Asset Manager"
	case RoleWarehouseKeeper:
		return "Warehouse Keeper"
	case RoleUser:
		return "Staff"
	default:
		return string(r)
	}
}

// UserPatch holds the fields to change on a user. Nil fields are left alone.
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	Department *string `json:"department,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// Apply returns a copy of u with the patch applied.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	return u
}
