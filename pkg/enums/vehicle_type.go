package enums

import "fmt"

// VehicleType categorizes the fleet.
type VehicleType string

const (
	VehicleTypeHearse VehicleType = "hearse"
	VehicleTypeSedan  VehicleType = "sedan"
	VehicleTypeVan    VehicleType = "van"
	VehicleTypeBus    VehicleType = "bus"
	VehicleTypeBakkie VehicleType = "bakkie"
)

var validVehicleTypes = []VehicleType{
	VehicleTypeHearse,
	VehicleTypeSedan,
	VehicleTypeVan,
	VehicleTypeBus,
	VehicleTypeBakkie,
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VehicleType.
func (v VehicleType) IsValid() bool {
	for _, candidate := range validVehicleTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleType converts raw input into a VehicleType.
func ParseVehicleType(value string) (VehicleType, error) {
	for _, candidate := range validVehicleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle type %q", value)
}
