package domain

import (
	"strconv"
	"strings"
)

// Permission is a capability bitmask carried in the access token.
type Permission uint32

const (
	PermissionView Permission = 1 << iota
	PermissionManageCakes
	PermissionManageUsers
	PermissionManageOrders
	PermissionManageDeliveries
	PermissionManageCategories
	PermissionManageCustomers
	PermissionManagePayments
)

// PermissionNone grants nothing; unknown roles resolve to it.
const PermissionNone Permission = 0

// AllPermissions lists every capability in bit order.
var AllPermissions = []Permission{
	PermissionView,
	PermissionManageCakes,
	PermissionManageUsers,
	PermissionManageOrders,
	PermissionManageDeliveries,
	PermissionManageCategories,
	PermissionManageCustomers,
	PermissionManagePayments,
}

var permissionNames = map[Permission]string{
	PermissionView:             "View",
	PermissionManageCakes:      "ManageCakes",
	PermissionManageUsers:      "ManageUsers",
	PermissionManageOrders:     "ManageOrders",
	PermissionManageDeliveries: "ManageDeliveries",
	PermissionManageCategories: "ManageCategories",
	PermissionManageCustomers:  "ManageCustomers",
	PermissionManagePayments:   "ManagePayments",
}

var rolePermissions = map[string]Permission{
	RoleAdmin: PermissionView | PermissionManageCakes | PermissionManageUsers | PermissionManageOrders |
		PermissionManageDeliveries | PermissionManageCategories | PermissionManageCustomers | PermissionManagePayments,
	RoleManager: PermissionView | PermissionManageCakes | PermissionManageOrders |
		PermissionManageCustomers | PermissionManageDeliveries,
	RoleUser: PermissionView,
}

// PermissionsForRole resolves the capabilities granted to a role.
// Role names are matched exactly; anything unknown maps to PermissionNone.
func PermissionsForRole(role string) Permission {
	return rolePermissions[role]
}

// Has reports whether every bit of required is present in p.
func (p Permission) Has(required Permission) bool {
	return p&required == required
}

// Claim renders the bitmask the way it travels in the token.
func (p Permission) Claim() string {
	return strconv.FormatUint(uint64(p), 10)
}

func (p Permission) String() string {
	if p == PermissionNone {
		return "None"
	}
	names := make([]string, 0, len(AllPermissions))
	for _, perm := range AllPermissions {
		if p.Has(perm) {
			names = append(names, permissionNames[perm])
		}
	}
	return strings.Join(names, "|")
}

// ParsePermission reads the decimal claim value back into a bitmask.
func ParsePermission(s string) (Permission, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return PermissionNone, err
	}
	return Permission(v), nil
}
