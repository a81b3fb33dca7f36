package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterfaceType(t *testing.T) {
	tests := []struct {
		name string
		port PortFacts
		want string
	}{
		{"ethernet by speed", PortFacts{Name: "GigabitEthernet0/1", PortType: "physical", DiscoveredType: "ethernetCsmacd", Speed: "1.0 Gbps", Up: true}, "1000base-t"},
		{"fibre channel", PortFacts{Name: "FC0/1", PortType: "physical", DiscoveredType: "fibreChannel", Speed: "1.0 Gbps", Up: true}, "1gfc-sfp"},
		{"unknown medium by speed", PortFacts{Name: "Ethernet0/1", PortType: "physical", DiscoveredType: "Unknown", Speed: "1.0 Gbps", Up: true}, "1000base-t"},
		{"discovered gigabit without speed", PortFacts{Name: "Vethernet100", PortType: "physical", DiscoveredType: "gigabitEthernet", Speed: "0", Up: true}, "1000base-t"},
		{"wireless", PortFacts{Name: "01:23:45:67:89:AB.0", PortType: "physical", DiscoveredType: "dot11b", Up: true}, "ieee802.11a"},
		{"down port by name", PortFacts{Name: "TenGigabitEthernet1/0/1", PortType: "physical", Speed: "1.0 Gbps"}, "10gbase-x-sfpp"},
		{"down junos port by name", PortFacts{Name: "xe-0/0/1", PortType: "physical"}, "10gbase-x-sfpp"},
		{"down unknown name", PortFacts{Name: "Foo1", PortType: "physical"}, "other"},
		{"lag", PortFacts{Name: "port-channel100", PortType: "logical", DiscoveredType: "ieee8023adLag"}, "lag"},
		{"lacp", PortFacts{Name: "Internal_Trunk", PortType: "logical", DiscoveredType: "lacp"}, "lag"},
		{"virtual", PortFacts{Name: "Vlan100", PortType: "logical", DiscoveredType: "propVirtual"}, "virtual"},
		{"virtual port channel", PortFacts{Name: "port-channel100", PortType: "logical", DiscoveredType: "propVirtual"}, "lag"},
		{"logical other", PortFacts{Name: "Tunnel0", PortType: "logical", DiscoveredType: "tunnel"}, "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceType(tt.port))
		})
	}
}
