package model

import "slices"

// Capability is a named permission a role may hold.
type Capability string

// Capabilities.
const (
	CapDashboardView     Capability = "dashboard.view"
	CapAssetsView        Capability = "assets.view"
	CapAssetsManage      Capability = "assets.manage"
	CapAssetsImport      Capability = "assets.import"
	CapAssetsExport      Capability = "assets.export"
	CapMaintenanceManage Capability = "maintenance.manage"
	CapAuditManage       Capability = "audit.manage"
	CapCatalogsManage    Capability = "catalogs.manage"
	CapUsersManage       Capability = "users.manage"
	CapReportsView       Capability = "reports.view"
)

// capabilities is the single source of truth for what each role may do.
var capabilities = map[Role][]Capability{
	RoleAdmin: {
		CapDashboardView, CapAssetsView, CapAssetsManage, CapAssetsImport, CapAssetsExport,
		CapMaintenanceManage, CapAuditManage, CapCatalogsManage, CapUsersManage, CapReportsView,
	},
	RoleManager: {
		CapDashboardView, CapAssetsView, CapAssetsManage, CapAssetsImport, CapAssetsExport,
		CapMaintenanceManage, CapAuditManage, CapCatalogsManage, CapReportsView,
	},
	RoleWarehouseKeeper: {
		CapDashboardView, CapAssetsView, CapAssetsManage, CapAssetsImport, CapAssetsExport,
		CapMaintenanceManage, CapCatalogsManage,
	},
	RoleUser: {
		CapDashboardView, CapAssetsView,
	},
}

// Can reports whether role holds the capability. Unknown roles hold nothing.
func Can(role Role, c Capability) bool {
	return slices.Contains(capabilities[role], c)
}

// Capabilities returns a copy of the capabilities held by role.
func Capabilities(role Role) []Capability {
	return slices.Clone(capabilities[role])
}

// NavEntry is one item of the dashboard navigation.
type NavEntry struct {
	Path     string     `json:"path"`
	Label    string     `json:"label"`
	Requires Capability `json:"requires"`
}

var navigation = []NavEntry{
	{Path: "/", Label: "Dashboard", Requires: CapDashboardView},
	{Path: "/assets", Label: "Assets", Requires: CapAssetsView},
	{Path: "/maintenance", Label: "Maintenance", Requires: CapMaintenanceManage},
	{Path: "/audit", Label: "Audit & liquidation", Requires: CapAuditManage},
	{Path: "/categories", Label: "Categories", Requires: CapCatalogsManage},
	{Path: "/suppliers", Label: "Suppliers", Requires: CapCatalogsManage},
	{Path: "/locations", Label: "Locations", Requires: CapCatalogsManage},
	{Path: "/reports", Label: "Reports", Requires: CapReportsView},
	{Path: "/users", Label: "Users", Requires: CapUsersManage},
}

// Navigation returns the navigation entries visible to role, in menu order.
func Navigation(role Role) []NavEntry {
	var entries []NavEntry
	for _, e := range navigation {
		if Can(role, e.Requires) {
			entries = append(entries, e)
		}
	}
	return entries
}
