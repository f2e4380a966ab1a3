package model

import "testing"

func TestCan(t *testing.T) {
	tests := []struct {
		role     Role
		cap      Capability
		expected bool
	}{
		{RoleAdmin, CapUsersManage, true},
		{RoleAdmin, CapReportsView, true},
		{RoleManager, CapUsersManage, false},
		{RoleManager, CapAuditManage, true},
		{RoleWarehouseKeeper, CapAssetsImport, true},
		{RoleWarehouseKeeper, CapReportsView, false},
		{RoleUser, CapAssetsView, true},
		{RoleUser, CapAssetsManage, false},
		// Unknown roles fail-closed.
		{"unknown", CapDashboardView, false},
		{"", CapAssetsView, false},
		{RoleAdmin, "unknown", false},
	}

	for _, tt := range tests {
		got := Can(tt.role, tt.cap)
		if got != tt.expected {
			t.Errorf("Can(%q, %q) = %v, want %v", tt.role, tt.cap, got, tt.expected)
		}
	}
}

func TestNavigation(t *testing.T) {
	admin := Navigation(RoleAdmin)
	if len(admin) != len(navigation) {
		t.Errorf("expected admin to see all %d entries, got %d", len(navigation), len(admin))
	}

	user := Navigation(RoleUser)
	if len(user) != 2 {
		t.Fatalf("expected 2 entries for user, got %d", len(user))
	}
	if user[0].Path != "/" || user[1].Path != "/assets" {
		t.Errorf("unexpected user navigation: %+v", user)
	}

	if got := Navigation("nobody"); len(got) != 0 {
		t.Errorf("expected no navigation for unknown role, got %d", len(got))
	}
}

func TestCapabilitiesIsCopy(t *testing.T) {
	caps := Capabilities(RoleUser)
	caps[0] = CapUsersManage
	if Can(RoleUser, CapUsersManage) {
		t.Error("mutating returned capabilities changed the table")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Error("roles are case-sensitive")
	}
}

func TestUserPatchApply(t *testing.T) {
	u := User{ID: "u1", Name: "Old", Email: "a@b.c", Role: RoleUser}
	name := "New"
	role := RoleManager

	got := UserPatch{Name: &name, Role: &role}.Apply(u)
	if got.Name != "New" || got.Role != RoleManager {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Email != "a@b.c" || got.ID != "u1" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if u.Name != "Old" {
		t.Error("Apply modified its input")
	}
}
