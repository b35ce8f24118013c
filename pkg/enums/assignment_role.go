package enums

import "fmt"

// AssignmentRole describes what duty a vehicle performs on a roster entry.
type AssignmentRole string

const (
	AssignmentRoleHearse    AssignmentRole = "hearse"
	AssignmentRoleFamilyCar AssignmentRole = "family_car"
	AssignmentRoleFlowerCar AssignmentRole = "flower_car"
	AssignmentRoleEscort    AssignmentRole = "escort"
	AssignmentRoleSupport   AssignmentRole = "support"
)

var validAssignmentRoles = []AssignmentRole{
	AssignmentRoleHearse,
	AssignmentRoleFamilyCar,
	AssignmentRoleFlowerCar,
	AssignmentRoleEscort,
	AssignmentRoleSupport,
}

// String implements fmt.Stringer.
func (a AssignmentRole) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AssignmentRole.
func (a AssignmentRole) IsValid() bool {
	for _, candidate := range validAssignmentRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAssignmentRole converts raw input into an AssignmentRole.
func ParseAssignmentRole(value string) (AssignmentRole, error) {
	for _, candidate := range validAssignmentRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment role %q", value)
}
