package heuristics

// Statuses used in the target inventory.
const (
	StatusActive         = "Active"
	StatusOffline        = "Offline"
	StatusReserved       = "Reserved"
	StatusProvisioning   = "Provisioning"
	StatusDeprovisioning = "Deprovisioning"
	StatusDecommissioned = "Decommissioned"
)

var circuitStatus = map[string]string{
	"Production":     StatusActive,
	"Provisioning":   StatusProvisioning,
	"Canceled":       StatusDeprovisioning,
	"Decommissioned": StatusDecommissioned,
}

// DeviceStatus maps the Device42 in_service flag.
func DeviceStatus(inService bool) string {
	if inService {
		return StatusActive
	}
	return StatusOffline
}

// IPStatus maps the Device42 available flag.
func IPStatus(available bool) string {
	if available {
		return StatusReserved
	}
	return StatusActive
}

// CircuitStatus maps a Device42 telco circuit status. Unknown values are Offline.
func CircuitStatus(status string) string {
	if s, ok := circuitStatus[status]; ok {
		return s
	}
	return StatusOffline
}
