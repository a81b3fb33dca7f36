package heuristics

import (
	"fmt"
	"strings"
)

var netmikoPlatforms = map[string]string{
	"asa":   "cisco_asa",
	"ios":   "cisco_ios",
	"iosxe": "cisco_ios",
	"nxos":  "cisco_nxos",
	"junos": "juniper_junos",
}

var napalmDrivers = map[string]string{
	"cisco_ios":     "ios",
	"cisco_nxos":    "nxos",
	"juniper_junos": "junos",
	"arista_eos":    "eos",
	"cisco_xr":      "iosxr",
	"cisco_asa":     "asa",
}

var ansiblePlatforms = map[string]string{
	"cisco_ios":     "cisco.ios.ios",
	"cisco_nxos":    "cisco.nxos.nxos",
	"juniper_junos": "junipernetworks.junos.junos",
	"arista_eos":    "arista.eos.eos",
	"cisco_xr":      "cisco.iosxr.iosxr",
	"cisco_asa":     "cisco.asa.asa",
}

var platformVendors = []struct {
	prefix string
	vendor string
}{
	{"cisco_", "Cisco"},
	{"juniper_", "Juniper"},
	{"arista_", "Arista"},
}

// Platform holds the automation facets derived from a Device42 OS name.
type Platform struct {
	// CLIDriver is the netmiko driver.
	CLIDriver string
	// NativeDriver is the napalm driver.
	NativeDriver string
	// AutomationOS is the ansible network OS, or the CLI driver when none is known.
	AutomationOS string
	// Vendor is implied by the CLI driver prefix.
	Vendor string
}

// IsZero reports whether no facet is set.
func (p Platform) IsZero() bool {
	return p.CLIDriver == ""
}

// NetmikoPlatform maps a Device42 OS name to its netmiko driver.
// Unknown names are returned lower-cased.
func NetmikoPlatform(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	if d, ok := netmikoPlatforms[os]; ok {
		return d
	}
	return os
}

// PlatformFacets splits a raw OS name into its facets. An empty OS yields a zero Platform.
func PlatformFacets(os string) Platform {
	driver := NetmikoPlatform(os)
	if driver == "" {
		return Platform{}
	}
	p := Platform{CLIDriver: driver, NativeDriver: driver, AutomationOS: driver}
	if d, ok := napalmDrivers[driver]; ok {
		p.NativeDriver = d
	} else if strings.HasPrefix(driver, "cisco_") {
		p.NativeDriver = strings.TrimPrefix(driver, "cisco_")
	}
	if a, ok := ansiblePlatforms[driver]; ok {
		p.AutomationOS = a
	}
	for _, pv := range platformVendors {
		if strings.HasPrefix(driver, pv.prefix) {
			p.Vendor = pv.vendor
			break
		}
	}
	return p
}

// CheckVendor fails with ErrAmbiguous when the platform implies a vendor other than
// the hardware manufacturer.
func (p Platform) CheckVendor(manufacturer string) error {
	if p.Vendor == "" || manufacturer == "" {
		return nil
	}
	if !strings.EqualFold(p.Vendor, strings.TrimSpace(manufacturer)) &&
		!strings.HasPrefix(strings.ToLower(manufacturer), strings.ToLower(p.Vendor)) {
		return fmt.Errorf("%w: platform %s implies vendor %s but hardware is made by %s",
			ErrAmbiguous, p.CLIDriver, p.Vendor, manufacturer)
	}
	return nil
}
