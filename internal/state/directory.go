package state

import "github.com/qtts/assetdesk/internal/model"

// DefaultUsers returns the static user directory the store is seeded with on
// every load.
func DefaultUsers() []model.User {
	return []model.User{
		{ID: "u1", Name: "Nguyen Van An", Email: "admin@qtts.com", Role: model.RoleAdmin, Department: "Administration"},
		{ID: "u2", Name: "Tran Thi Binh", Email: "manager@qtts.com", Role: model.RoleManager, Department: "Finance"},
		{ID: "u3", Name: "Le Van Cuong", Email: "kho@qtts.com", Role: model.RoleWarehouseKeeper, Department: "Warehouse"},
		{ID: "u4", Name: "Pham Thi Dung", Email: "staff@qtts.com", Role: model.RoleUser, Department: "Sales"},
	}
}
