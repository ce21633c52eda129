package models

import "testing"

func TestParsePostCategory(t *testing.T) {
	for _, c := range PostCategories {
		got, err := ParsePostCategory(string(c))
		if err != nil {
			t.Errorf("ParsePostCategory(%q) error = %v", c, err)
		}
		if got != c {
			t.Errorf("ParsePostCategory(%q) = %q", c, got)
		}
	}

	if _, err := ParsePostCategory("potholes"); err == nil {
		t.Error("ParsePostCategory accepted an unknown category")
	}
	if _, err := ParsePostCategory(""); err == nil {
		t.Error("ParsePostCategory accepted empty string")
	}
}

func TestParsePostStatus(t *testing.T) {
	for _, s := range PostStatuses {
		got, err := ParsePostStatus(string(s))
		if err != nil {
			t.Errorf("ParsePostStatus(%q) error = %v", s, err)
		}
		if got != s {
			t.Errorf("ParsePostStatus(%q) = %q", s, got)
		}
	}

	if _, err := ParsePostStatus("done"); err == nil {
		t.Error("ParsePostStatus accepted an unknown status")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("citizen"); err != nil {
		t.Errorf("ParseRole(citizen) error = %v", err)
	}
	if _, err := ParseRole("superadmin"); err == nil {
		t.Error("ParseRole accepted an unknown role")
	}
}

func TestRoleCanModerate(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleCitizen, false},
		{RoleModerator, true},
		{RoleAdmin, true},
	}
	for _, tt := range tests {
		if got := tt.role.CanModerate(); got != tt.want {
			t.Errorf("%s.CanModerate() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestParseAlertType(t *testing.T) {
	for _, a := range []string{"info", "warning", "danger", "success"} {
		if _, err := ParseAlertType(a); err != nil {
			t.Errorf("ParseAlertType(%q) error = %v", a, err)
		}
	}
	if _, err := ParseAlertType("critical"); err == nil {
		t.Error("ParseAlertType accepted an unknown type")
	}
}
