package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetmikoPlatform(t *testing.T) {
	tests := []struct {
		os   string
		want string
	}{
		{"asa", "cisco_asa"},
		{"ios", "cisco_ios"},
		{"iosxe", "cisco_ios"},
		{"nxos", "cisco_nxos"},
		{"junos", "juniper_junos"},
		{"EOS", "eos"},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			assert.Equal(t, tt.want, NetmikoPlatform(tt.os))
		})
	}
}

func TestPlatformFacets(t *testing.T) {
	p := PlatformFacets("nxos")
	assert.Equal(t, Platform{
		CLIDriver:    "cisco_nxos",
		NativeDriver: "nxos",
		AutomationOS: "cisco.nxos.nxos",
		Vendor:       "Cisco",
	}, p)

	wlc := PlatformFacets("cisco_wlc")
	assert.Equal(t, "wlc", wlc.NativeDriver)
	assert.Equal(t, "cisco_wlc", wlc.AutomationOS)

	assert.True(t, PlatformFacets("").IsZero())
}

func TestPlatform_CheckVendor(t *testing.T) {
	p := PlatformFacets("junos")
	assert.NoError(t, p.CheckVendor("Juniper Networks"))
	assert.NoError(t, p.CheckVendor(""))
	assert.ErrorIs(t, p.CheckVendor("Cisco"), ErrAmbiguous)
	assert.NoError(t, PlatformFacets("linux").CheckVendor("Dell"))
}

func TestStatuses(t *testing.T) {
	assert.Equal(t, StatusActive, DeviceStatus(true))
	assert.Equal(t, StatusOffline, DeviceStatus(false))
	assert.Equal(t, StatusReserved, IPStatus(true))
	assert.Equal(t, StatusActive, IPStatus(false))
	assert.Equal(t, StatusActive, CircuitStatus("Production"))
	assert.Equal(t, StatusDeprovisioning, CircuitStatus("Canceled"))
	assert.Equal(t, StatusOffline, CircuitStatus("Whatever"))
}
