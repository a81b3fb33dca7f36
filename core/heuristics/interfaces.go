package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

// Interface types used in the target inventory.
const (
	InterfaceVirtual = "virtual"
	InterfaceLAG     = "lag"
	InterfaceOther   = "other"
)

// Keyed by speed in Mbps.
var ethernetTypes = map[int]string{
	10:     "10base-t",
	100:    "100base-tx",
	1000:   "1000base-t",
	2500:   "2.5gbase-t",
	5000:   "5gbase-t",
	10000:  "10gbase-x-sfpp",
	25000:  "25gbase-x-sfp28",
	40000:  "40gbase-x-qsfpp",
	50000:  "50gbase-x-sfp56",
	100000: "100gbase-x-qsfp28",
	200000: "200gbase-x-qsfp56",
	400000: "400gbase-x-qsfpdd",
}

var fibreChannelTypes = map[int]string{
	1000:   "1gfc-sfp",
	2000:   "2gfc-sfp",
	4000:   "4gfc-sfp",
	8000:   "8gfc-sfpp",
	16000:  "16gfc-sfpp",
	32000:  "32gfc-sfp28",
	64000:  "64gfc-qsfpp",
	128000: "128gfc-qsfp28",
}

// Used when a port is down and its reported speed cannot be trusted.
var interfaceNameTypes = map[string]string{
	"FastEthernet":         "100base-tx",
	"GigabitEthernet":      "1000base-t",
	"TwoGigabitEthernet":   "2.5gbase-t",
	"FiveGigabitEthernet":  "5gbase-t",
	"TenGigabitEthernet":   "10gbase-x-sfpp",
	"TenGigE":              "10gbase-x-sfpp",
	"Te":                   "10gbase-x-sfpp",
	"TwentyFiveGigE":       "25gbase-x-sfp28",
	"FortyGigabitEthernet": "40gbase-x-qsfpp",
	"FortyGigE":            "40gbase-x-qsfpp",
	"HundredGigE":          "100gbase-x-qsfp28",
	"FourHundredGigE":      "400gbase-x-qsfpdd",
	"Gi":                   "1000base-t",
	"ge":                   "1000base-t",
	"xe":                   "10gbase-x-sfpp",
	"et":                   "100gbase-x-qsfp28",
	"mgmt":                 "1000base-t",
	"fc":                   "8gfc-sfpp",
	"FC":                   "8gfc-sfpp",
}

// Discovered types that identify the medium regardless of speed.
var discoveredTypes = map[string]string{
	"gigabitEthernet": "1000base-t",
	"fastEther":       "100base-tx",
	"dot11a":          "ieee802.11a",
	"dot11b":          "ieee802.11a",
	"ieee80211":       "ieee802.11a",
}

var (
	interfaceNamePrefix = regexp.MustCompile(`^[a-zA-Z]+-?[a-zA-Z]+`)
	speedPattern        = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?)(?:bps|b/s)?`)
)

// PortFacts are the Device42 port fields interface typing depends on.
type PortFacts struct {
	Name           string
	PortType       string
	DiscoveredType string
	Speed          string
	Up             bool
}

// InterfaceType derives the target interface type of a port.
func InterfaceType(p PortFacts) string {
	switch p.PortType {
	case "physical":
		if p.Up {
			return physicalUpType(p)
		}
		if t, ok := interfaceNameTypes[namePrefix(p.Name)]; ok {
			return t
		}
		if t, ok := discoveredTypes[p.DiscoveredType]; ok {
			return t
		}
		return InterfaceOther
	case "logical":
		switch p.DiscoveredType {
		case "ieee8023adLag", "lacp":
			return InterfaceLAG
		case "softwareLoopback", "propVirtual":
			if strings.EqualFold(namePrefix(p.Name), "port-channel") {
				return InterfaceLAG
			}
			return InterfaceVirtual
		}
	}
	return InterfaceOther
}

func physicalUpType(p PortFacts) string {
	mbps := SpeedMbps(p.Speed)
	if p.DiscoveredType == "fibreChannel" {
		if t, ok := fibreChannelTypes[mbps]; ok {
			return t
		}
	}
	if t, ok := ethernetTypes[mbps]; ok {
		return t
	}
	if t, ok := discoveredTypes[p.DiscoveredType]; ok {
		return t
	}
	return InterfaceOther
}

func namePrefix(name string) string {
	return interfaceNamePrefix.FindString(strings.TrimSpace(name))
}

// SpeedMbps parses speeds such as "1.0 Gbps", "100 Mbps" or "10G". Unparseable input yields 0.
func SpeedMbps(speed string) int {
	m := speedPattern.FindStringSubmatch(strings.TrimSpace(speed))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case "K":
		v /= 1000
	case "G":
		v *= 1000
	case "T":
		v *= 1000000
	}
	return int(v + 0.5)
}
