package domain

import (
	"testing"
	"time"
)

func TestPermissionsForRole(t *testing.T) {
	cases := []struct {
		role  string
		grant []Permission
	}{
		{RoleAdmin, AllPermissions},
		{RoleManager, []Permission{
			PermissionView, PermissionManageCakes, PermissionManageOrders,
			PermissionManageCustomers, PermissionManageDeliveries,
		}},
		{RoleUser, []Permission{PermissionView}},
		{"unknown-role", nil},
		{"admin", nil},
		{"", nil},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			got := PermissionsForRole(tc.role)
			granted := make(map[Permission]bool, len(tc.grant))
			for _, p := range tc.grant {
				granted[p] = true
			}
			for _, p := range AllPermissions {
				if got.Has(p) != granted[p] {
					t.Fatalf("role %q: permission %s granted=%v, want %v", tc.role, p, got.Has(p), granted[p])
				}
			}
		})
	}
}

func TestPermissionsForRole_UnknownIsZero(t *testing.T) {
	if got := PermissionsForRole("unknown-role"); got != PermissionNone {
		t.Fatalf("expected no permissions, got %d", got)
	}
}

func TestPermission_DistinctBits(t *testing.T) {
	var seen Permission
	for _, p := range AllPermissions {
		if p&(p-1) != 0 {
			t.Fatalf("%s is not a single bit", p)
		}
		if seen&p != 0 {
			t.Fatalf("%s overlaps another permission", p)
		}
		seen |= p
	}
	if seen != PermissionsForRole(RoleAdmin) {
		t.Fatalf("admin mask %d does not cover all permissions %d", PermissionsForRole(RoleAdmin), seen)
	}
}

func TestPermission_ClaimRoundTrip(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleUser, "nobody"} {
		p := PermissionsForRole(role)
		parsed, err := ParsePermission(p.Claim())
		if err != nil {
			t.Fatalf("parse %q: %v", p.Claim(), err)
		}
		if parsed != p {
			t.Fatalf("round trip mismatch for %s: got %d want %d", role, parsed, p)
		}
	}

	if got := PermissionsForRole(RoleAdmin).Claim(); got != "255" {
		t.Fatalf("admin claim = %q, want 255", got)
	}
	if _, err := ParsePermission("not-a-number"); err == nil {
		t.Fatalf("expected error for non-numeric claim")
	}
}

func TestPermission_String(t *testing.T) {
	if got := (PermissionView | PermissionManageCakes).String(); got != "View|ManageCakes" {
		t.Fatalf("unexpected string: %s", got)
	}
	if got := PermissionNone.String(); got != "None" {
		t.Fatalf("unexpected string: %s", got)
	}
}

func TestUser_RefreshTokenValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Second)
	earlier := now.Add(-time.Second)

	cases := []struct {
		name   string
		token  string
		expiry *time.Time
		want   bool
	}{
		{"future expiry", "tok", &later, true},
		{"expiry equals now", "tok", &now, false},
		{"past expiry", "tok", &earlier, false},
		{"no token", "", &later, false},
		{"no expiry", "tok", nil, false},
	}
	for _, tc := range cases {
		u := User{RefreshToken: tc.token, RefreshTokenExpiresAt: tc.expiry}
		if got := u.RefreshTokenValid(now); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
