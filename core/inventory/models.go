package inventory

import (
	"fmt"
	"math"
	"strconv"
)

// Building is a site.
type Building struct {
	Record
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Address      string       `gorm:"column:address;size:200" json:"address" yaml:"address"`
	Latitude     float64      `gorm:"column:latitude" json:"latitude" yaml:"latitude"`
	Longitude    float64      `gorm:"column:longitude" json:"longitude" yaml:"longitude"`
	ContactName  string       `gorm:"column:contact_name;size:100" json:"contact_name" yaml:"contact_name"`
	ContactPhone string       `gorm:"column:contact_phone;size:50" json:"contact_phone" yaml:"contact_phone"`
	Status       string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	Facility     string       `gorm:"column:facility;size:50" json:"facility" yaml:"facility"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Building) TableName() string { return "dcim_site" }
func (Building) EntityType() Type  { return TypeBuilding }
func (b Building) Refs() []Ref     { return nil }
func (b Building) Key() (string, error) {
	if b.Name == "" {
		return "", missing(TypeBuilding, "name")
	}
	return b.Name, nil
}

func (b Building) Attrs() Attrs {
	return Attrs{
		"address":       b.Address,
		"latitude":      Round6(b.Latitude),
		"longitude":     Round6(b.Longitude),
		"contact_name":  b.ContactName,
		"contact_phone": b.ContactPhone,
		"status":        b.Status,
		"facility":      b.Facility,
		"tags":          b.Tags.Sorted(),
		"custom_fields": b.CustomFields.Sorted(),
	}
}

// Room groups racks inside a building.
type Room struct {
	Record
	Building     string       `gorm:"column:building;size:100" json:"building" yaml:"building"`
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Notes        string       `gorm:"column:notes;type:text" json:"notes" yaml:"notes"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Room) TableName() string { return "dcim_rackgroup" }
func (Room) EntityType() Type  { return TypeRoom }

func (r Room) Key() (string, error) {
	if r.Building == "" || r.Name == "" {
		return "", missing(TypeRoom, "building", "name")
	}
	return JoinKey(r.Building, r.Name), nil
}

func (r Room) Attrs() Attrs {
	return Attrs{
		"notes":         r.Notes,
		"tags":          r.Tags.Sorted(),
		"custom_fields": r.CustomFields.Sorted(),
	}
}

func (r Room) Refs() []Ref {
	return []Ref{{Type: TypeBuilding, Key: r.Building}}
}

// Rack lives in a room.
type Rack struct {
	Record
	Building                 string       `gorm:"column:building;size:100" json:"building" yaml:"building"`
	Room                     string       `gorm:"column:room;size:100" json:"room" yaml:"room"`
	Name                     string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Height                   int          `gorm:"column:height" json:"height" yaml:"height"`
	NumberingStartFromBottom bool         `gorm:"column:numbering_start_from_bottom" json:"numbering_start_from_bottom" yaml:"numbering_start_from_bottom"`
	Status                   string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	Tags                     StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields             CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Rack) TableName() string { return "dcim_rack" }
func (Rack) EntityType() Type  { return TypeRack }

func (r Rack) Key() (string, error) {
	if r.Building == "" || r.Room == "" || r.Name == "" {
		return "", missing(TypeRack, "building", "room", "name")
	}
	return JoinKey(r.Building, r.Room, r.Name), nil
}

func (r Rack) Attrs() Attrs {
	return Attrs{
		"height":                      r.Height,
		"numbering_start_from_bottom": r.NumberingStartFromBottom,
		"status":                      r.Status,
		"tags":                        r.Tags.Sorted(),
		"custom_fields":               r.CustomFields.Sorted(),
	}
}

func (r Rack) Refs() []Ref {
	return []Ref{
		{Type: TypeBuilding, Key: r.Building},
		{Type: TypeRoom, Key: JoinKey(r.Building, r.Room)},
	}
}

// Vendor is a hardware manufacturer.
type Vendor struct {
	Record
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Vendor) TableName() string { return "dcim_manufacturer" }
func (Vendor) EntityType() Type  { return TypeVendor }
func (v Vendor) Refs() []Ref     { return nil }

func (v Vendor) Key() (string, error) {
	if v.Name == "" {
		return "", missing(TypeVendor, "name")
	}
	return v.Name, nil
}

func (v Vendor) Attrs() Attrs {
	return Attrs{"custom_fields": v.CustomFields.Sorted()}
}

// Hardware is a device model.
type Hardware struct {
	Record
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Vendor       string       `gorm:"column:vendor;size:100" json:"vendor" yaml:"vendor"`
	Size         float64      `gorm:"column:size" json:"size" yaml:"size"`
	Depth        string       `gorm:"column:depth;size:20" json:"depth" yaml:"depth"`
	PartNumber   string       `gorm:"column:part_number;size:50" json:"part_number" yaml:"part_number"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Hardware) TableName() string { return "dcim_devicetype" }
func (Hardware) EntityType() Type  { return TypeHardware }

func (h Hardware) Key() (string, error) {
	if h.Name == "" {
		return "", missing(TypeHardware, "name")
	}
	return h.Name, nil
}

func (h Hardware) Attrs() Attrs {
	return Attrs{
		"vendor":        h.Vendor,
		"size":          h.Size,
		"depth":         h.Depth,
		"part_number":   h.PartNumber,
		"custom_fields": h.CustomFields.Sorted(),
	}
}

func (h Hardware) Refs() []Ref {
	if h.Vendor == "" {
		return nil
	}
	return []Ref{{Type: TypeVendor, Key: h.Vendor}}
}

// Cluster is a virtual chassis (switch stack or HA pair).
type Cluster struct {
	Record
	Name         string       `gorm:"column:name;size:64" json:"name" yaml:"name"`
	Members      StringList   `gorm:"column:members" json:"members" yaml:"members"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Cluster) TableName() string { return "dcim_virtualchassis" }
func (Cluster) EntityType() Type  { return TypeCluster }
func (c Cluster) Refs() []Ref     { return nil }

func (c Cluster) Key() (string, error) {
	if c.Name == "" {
		return "", missing(TypeCluster, "name")
	}
	return c.Name, nil
}

func (c Cluster) Attrs() Attrs {
	return Attrs{
		"members":       c.Members.Sorted(),
		"tags":          c.Tags.Sorted(),
		"custom_fields": c.CustomFields.Sorted(),
	}
}

// VLAN is keyed by site, VLAN id and name. An empty site means siteless.
type VLAN struct {
	Record
	Site         string       `gorm:"column:site;size:100" json:"site" yaml:"site"`
	VID          int          `gorm:"column:vid" json:"vid" yaml:"vid"`
	Name         string       `gorm:"column:name;size:64" json:"name" yaml:"name"`
	Description  string       `gorm:"column:description;size:200" json:"description" yaml:"description"`
	Status       string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (VLAN) TableName() string { return "ipam_vlan" }
func (VLAN) EntityType() Type  { return TypeVLAN }

// VLANKey builds the key of a VLAN without constructing one.
func VLANKey(site string, vid int, name string) string {
	return JoinKey(site, strconv.Itoa(vid), name)
}

func (v VLAN) Key() (string, error) {
	if v.Name == "" || v.VID < 1 || v.VID > 4094 {
		return "", fmt.Errorf("%w: vlan requires name and vid in 1..4094, got %q/%d", ErrKeyDerivation, v.Name, v.VID)
	}
	return VLANKey(v.Site, v.VID, v.Name), nil
}

func (v VLAN) Attrs() Attrs {
	return Attrs{
		"description":   v.Description,
		"status":        v.Status,
		"custom_fields": v.CustomFields.Sorted(),
	}
}

func (v VLAN) Refs() []Ref {
	if v.Site == "" {
		return nil
	}
	return []Ref{{Type: TypeBuilding, Key: v.Site}}
}

// Device is a network device. Cluster and VCPosition place it in a virtual
// chassis; position 0 is the chassis master.
type Device struct {
	Record
	Name         string       `gorm:"column:name;size:64" json:"name" yaml:"name"`
	Site         string       `gorm:"column:site;size:100" json:"site" yaml:"site"`
	Room         string       `gorm:"column:room;size:100" json:"room" yaml:"room"`
	Rack         string       `gorm:"column:rack;size:100" json:"rack" yaml:"rack"`
	Position     int          `gorm:"column:position" json:"position" yaml:"position"`
	Face         string       `gorm:"column:face;size:10" json:"face" yaml:"face"`
	Hardware     string       `gorm:"column:hardware;size:100" json:"hardware" yaml:"hardware"`
	Role         string       `gorm:"column:role;size:100" json:"role" yaml:"role"`
	Status       string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	Platform     string       `gorm:"column:platform;size:100" json:"platform" yaml:"platform"`
	CLIDriver    string       `gorm:"column:cli_driver;size:100" json:"cli_driver" yaml:"cli_driver"`
	NativeDriver string       `gorm:"column:native_driver;size:100" json:"native_driver" yaml:"native_driver"`
	OSVersion    string       `gorm:"column:os_version;size:100" json:"os_version" yaml:"os_version"`
	Serial       string       `gorm:"column:serial;size:100" json:"serial" yaml:"serial"`
	Cluster      string       `gorm:"column:cluster;size:64" json:"cluster" yaml:"cluster"`
	VCPosition   int          `gorm:"column:vc_position" json:"vc_position" yaml:"vc_position"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Device) TableName() string { return "dcim_device" }
func (Device) EntityType() Type  { return TypeDevice }

func (d Device) Key() (string, error) {
	if d.Name == "" {
		return "", missing(TypeDevice, "name")
	}
	return d.Name, nil
}

// IsChassisMaster reports whether the device is the position 0 member of a virtual chassis.
func (d Device) IsChassisMaster() bool {
	return d.Cluster != "" && d.VCPosition == 0
}

func (d Device) Attrs() Attrs {
	return Attrs{
		"site":          d.Site,
		"room":          d.Room,
		"rack":          d.Rack,
		"position":      d.Position,
		"face":          d.Face,
		"hardware":      d.Hardware,
		"role":          d.Role,
		"status":        d.Status,
		"platform":      d.Platform,
		"cli_driver":    d.CLIDriver,
		"native_driver": d.NativeDriver,
		"os_version":    d.OSVersion,
		"serial":        d.Serial,
		"cluster":       d.Cluster,
		"vc_position":   d.VCPosition,
		"tags":          d.Tags.Sorted(),
		"custom_fields": d.CustomFields.Sorted(),
	}
}

func (d Device) Refs() []Ref {
	refs := []Ref{{Type: TypeBuilding, Key: d.Site}}
	if d.Room != "" {
		refs = append(refs, Ref{Type: TypeRoom, Key: JoinKey(d.Site, d.Room)})
	}
	if d.Room != "" && d.Rack != "" {
		refs = append(refs, Ref{Type: TypeRack, Key: JoinKey(d.Site, d.Room, d.Rack)})
	}
	if d.Hardware != "" {
		refs = append(refs, Ref{Type: TypeHardware, Key: d.Hardware})
	}
	if d.Cluster != "" {
		refs = append(refs, Ref{Type: TypeCluster, Key: d.Cluster})
	}
	return refs
}

// Port is a device interface. VLANs holds VLAN keys.
type Port struct {
	Record
	Device       string       `gorm:"column:device;size:64" json:"device" yaml:"device"`
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Enabled      bool         `gorm:"column:enabled" json:"enabled" yaml:"enabled"`
	MTU          int          `gorm:"column:mtu" json:"mtu" yaml:"mtu"`
	Description  string       `gorm:"column:description;size:200" json:"description" yaml:"description"`
	MACAddress   string       `gorm:"column:mac_address;size:20" json:"mac_address" yaml:"mac_address"`
	Type         string       `gorm:"column:type;size:50" json:"type" yaml:"type"`
	Mode         string       `gorm:"column:mode;size:20" json:"mode" yaml:"mode"`
	MgmtOnly     bool         `gorm:"column:mgmt_only" json:"mgmt_only" yaml:"mgmt_only"`
	VLANs        StringList   `gorm:"column:vlans" json:"vlans" yaml:"vlans"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Port) TableName() string { return "dcim_interface" }
func (Port) EntityType() Type  { return TypePort }

func (p Port) Key() (string, error) {
	if p.Device == "" || p.Name == "" {
		return "", missing(TypePort, "device", "name")
	}
	return JoinKey(p.Device, p.Name), nil
}

func (p Port) Attrs() Attrs {
	return Attrs{
		"enabled":       p.Enabled,
		"mtu":           p.MTU,
		"description":   p.Description,
		"mac_address":   p.MACAddress,
		"type":          p.Type,
		"mode":          p.Mode,
		"mgmt_only":     p.MgmtOnly,
		"vlans":         p.VLANs.Sorted(),
		"tags":          p.Tags.Sorted(),
		"custom_fields": p.CustomFields.Sorted(),
	}
}

func (p Port) Refs() []Ref {
	refs := []Ref{{Type: TypeDevice, Key: p.Device}}
	for _, v := range p.VLANs.Sorted() {
		refs = append(refs, Ref{Type: TypeVLAN, Key: v})
	}
	return refs
}

// VRF is a routing table (Device42 VRF group).
type VRF struct {
	Record
	Name         string       `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Description  string       `gorm:"column:description;size:200" json:"description" yaml:"description"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (VRF) TableName() string { return "ipam_vrf" }
func (VRF) EntityType() Type  { return TypeVRF }
func (v VRF) Refs() []Ref     { return nil }

func (v VRF) Key() (string, error) {
	if v.Name == "" {
		return "", missing(TypeVRF, "name")
	}
	return v.Name, nil
}

func (v VRF) Attrs() Attrs {
	return Attrs{
		"description":   v.Description,
		"tags":          v.Tags.Sorted(),
		"custom_fields": v.CustomFields.Sorted(),
	}
}

// Subnet is a prefix, optionally inside a VRF.
type Subnet struct {
	Record
	VRF          string       `gorm:"column:vrf;size:100" json:"vrf" yaml:"vrf"`
	Network      string       `gorm:"column:network;size:64" json:"network" yaml:"network"`
	MaskBits     int          `gorm:"column:mask_bits" json:"mask_bits" yaml:"mask_bits"`
	Description  string       `gorm:"column:description;size:200" json:"description" yaml:"description"`
	Status       string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (Subnet) TableName() string { return "ipam_prefix" }
func (Subnet) EntityType() Type  { return TypeSubnet }

// Prefix renders network/mask_bits.
func (s Subnet) Prefix() string {
	return fmt.Sprintf("%s/%d", s.Network, s.MaskBits)
}

func (s Subnet) Key() (string, error) {
	if s.Network == "" || s.MaskBits <= 0 {
		return "", fmt.Errorf("%w: subnet requires network and non-zero mask bits, got %q/%d", ErrKeyDerivation, s.Network, s.MaskBits)
	}
	return JoinKey(s.VRF, s.Prefix()), nil
}

func (s Subnet) Attrs() Attrs {
	return Attrs{
		"description":   s.Description,
		"status":        s.Status,
		"tags":          s.Tags.Sorted(),
		"custom_fields": s.CustomFields.Sorted(),
	}
}

func (s Subnet) Refs() []Ref {
	if s.VRF == "" {
		return nil
	}
	return []Ref{{Type: TypeVRF, Key: s.VRF}}
}

// IPAddress is an address with prefix length, optionally assigned to a device port.
type IPAddress struct {
	Record
	VRF          string       `gorm:"column:vrf;size:100" json:"vrf" yaml:"vrf"`
	Address      string       `gorm:"column:address;size:64" json:"address" yaml:"address"`
	Status       string       `gorm:"column:status;size:50" json:"status" yaml:"status"`
	Description  string       `gorm:"column:description;size:200" json:"description" yaml:"description"`
	Role         string       `gorm:"column:role;size:50" json:"role" yaml:"role"`
	Device       string       `gorm:"column:device;size:64" json:"device" yaml:"device"`
	Interface    string       `gorm:"column:interface;size:100" json:"interface" yaml:"interface"`
	Primary      bool         `gorm:"column:is_primary" json:"primary" yaml:"primary"`
	Tags         StringList   `gorm:"column:tags" json:"tags" yaml:"tags"`
	CustomFields CustomFields `gorm:"column:custom_fields" json:"custom_fields" yaml:"custom_fields"`
}

func (IPAddress) TableName() string { return "ipam_ipaddress" }
func (IPAddress) EntityType() Type  { return TypeIPAddress }

// IPAddressKey builds the key of an IP address without constructing one.
func IPAddressKey(vrf, address string) string {
	return JoinKey(vrf, address)
}

func (ip IPAddress) Key() (string, error) {
	if ip.Address == "" {
		return "", missing(TypeIPAddress, "address")
	}
	return IPAddressKey(ip.VRF, ip.Address), nil
}

func (ip IPAddress) Attrs() Attrs {
	return Attrs{
		"status":        ip.Status,
		"description":   ip.Description,
		"role":          ip.Role,
		"device":        ip.Device,
		"interface":     ip.Interface,
		"is_primary":    ip.Primary,
		"tags":          ip.Tags.Sorted(),
		"custom_fields": ip.CustomFields.Sorted(),
	}
}

func (ip IPAddress) Refs() []Ref {
	var refs []Ref
	if ip.VRF != "" {
		refs = append(refs, Ref{Type: TypeVRF, Key: ip.VRF})
	}
	if ip.Device != "" {
		refs = append(refs, Ref{Type: TypeDevice, Key: ip.Device})
		if ip.Interface != "" {
			refs = append(refs, Ref{Type: TypePort, Key: JoinKey(ip.Device, ip.Interface)})
		}
	}
	return refs
}

// Provider is a circuit carrier.
type Provider struct {
	Record
	Name     string `gorm:"column:name;size:100" json:"name" yaml:"name"`
	Notes    string `gorm:"column:notes;type:text" json:"notes" yaml:"notes"`
	URL      string `gorm:"column:url;size:200" json:"url" yaml:"url"`
	Account  string `gorm:"column:account;size:30" json:"account" yaml:"account"`
	Contact1 string `gorm:"column:contact1;size:200" json:"contact1" yaml:"contact1"`
	Contact2 string `gorm:"column:contact2;size:200" json:"contact2" yaml:"contact2"`
}

func (Provider) TableName() string { return "circuits_provider" }
func (Provider) EntityType() Type  { return TypeProvider }
func (p Provider) Refs() []Ref     { return nil }

func (p Provider) Key() (string, error) {
	if p.Name == "" {
		return "", missing(TypeProvider, "name")
	}
	return p.Name, nil
}

func (p Provider) Attrs() Attrs {
	return Attrs{
		"notes":    p.Notes,
		"url":      p.URL,
		"account":  p.Account,
		"contact1": p.Contact1,
		"contact2": p.Contact2,
	}
}

// Circuit is a telco circuit.
type Circuit struct {
	Record
	Provider    string     `gorm:"column:provider;size:100" json:"provider" yaml:"provider"`
	CircuitID   string     `gorm:"column:circuit_id;size:100" json:"circuit_id" yaml:"circuit_id"`
	Type        string     `gorm:"column:type;size:100" json:"type" yaml:"type"`
	Status      string     `gorm:"column:status;size:50" json:"status" yaml:"status"`
	InstallDate string     `gorm:"column:install_date;size:20" json:"install_date" yaml:"install_date"`
	CommitRate  int        `gorm:"column:commit_rate" json:"commit_rate" yaml:"commit_rate"`
	Notes       string     `gorm:"column:notes;type:text" json:"notes" yaml:"notes"`
	Tags        StringList `gorm:"column:tags" json:"tags" yaml:"tags"`
}

func (Circuit) TableName() string { return "circuits_circuit" }
func (Circuit) EntityType() Type  { return TypeCircuit }

func (c Circuit) Key() (string, error) {
	if c.Provider == "" || c.CircuitID == "" {
		return "", missing(TypeCircuit, "provider", "circuit_id")
	}
	return JoinKey(c.Provider, c.CircuitID), nil
}

func (c Circuit) Attrs() Attrs {
	return Attrs{
		"type":         c.Type,
		"status":       c.Status,
		"install_date": c.InstallDate,
		"commit_rate":  c.CommitRate,
		"notes":        c.Notes,
		"tags":         c.Tags.Sorted(),
	}
}

func (c Circuit) Refs() []Ref {
	return []Ref{{Type: TypeProvider, Key: c.Provider}}
}

// CircuitTermination is the A or Z side of a circuit.
type CircuitTermination struct {
	Record
	Provider  string `gorm:"column:provider;size:100" json:"provider" yaml:"provider"`
	CircuitID string `gorm:"column:circuit_id;size:100" json:"circuit_id" yaml:"circuit_id"`
	Side      string `gorm:"column:side;size:1" json:"side" yaml:"side"`
	Site      string `gorm:"column:site;size:100" json:"site" yaml:"site"`
	PortSpeed int    `gorm:"column:port_speed" json:"port_speed" yaml:"port_speed"`
}

func (CircuitTermination) TableName() string { return "circuits_circuittermination" }
func (CircuitTermination) EntityType() Type  { return TypeCircuitTermination }

// TerminationKey builds the key of a circuit termination.
func TerminationKey(provider, circuitID, side string) string {
	return JoinKey(provider, circuitID, side)
}

func (t CircuitTermination) Key() (string, error) {
	if t.Provider == "" || t.CircuitID == "" || (t.Side != "A" && t.Side != "Z") {
		return "", missing(TypeCircuitTermination, "provider", "circuit_id", "side")
	}
	return TerminationKey(t.Provider, t.CircuitID, t.Side), nil
}

func (t CircuitTermination) Attrs() Attrs {
	return Attrs{
		"site":       t.Site,
		"port_speed": t.PortSpeed,
	}
}

func (t CircuitTermination) Refs() []Ref {
	refs := []Ref{{Type: TypeCircuit, Key: JoinKey(t.Provider, t.CircuitID)}}
	if t.Site != "" {
		refs = append(refs, Ref{Type: TypeBuilding, Key: t.Site})
	}
	return refs
}

// Endpoint kinds of a Connection.
const (
	EndpointInterface = "interface"
	EndpointCircuit   = "circuit"
)

// Endpoint is one end of a cable. For circuit endpoints Device holds the
// provider and Port holds circuit_id and side joined by KeySeparator.
type Endpoint struct {
	Kind   string `gorm:"column:kind;size:20" json:"kind" yaml:"kind"`
	Device string `gorm:"column:device;size:100" json:"device" yaml:"device"`
	Port   string `gorm:"column:port;size:200" json:"port" yaml:"port"`
}

// InterfaceEndpoint points at a device port.
func InterfaceEndpoint(device, port string) Endpoint {
	return Endpoint{Kind: EndpointInterface, Device: device, Port: port}
}

// CircuitEndpoint points at a circuit termination.
func CircuitEndpoint(provider, circuitID, side string) Endpoint {
	return Endpoint{Kind: EndpointCircuit, Device: provider, Port: JoinKey(circuitID, side)}
}

func (e Endpoint) String() string {
	return JoinKey(e.Kind, e.Device, e.Port)
}

func (e Endpoint) ref() (Ref, bool) {
	if e.Device == "" || e.Port == "" {
		return Ref{}, false
	}
	switch e.Kind {
	case EndpointInterface:
		return Ref{Type: TypePort, Key: JoinKey(e.Device, e.Port)}, true
	case EndpointCircuit:
		return Ref{Type: TypeCircuitTermination, Key: JoinKey(e.Device, e.Port)}, true
	}
	return Ref{}, false
}

// Connection is a cable between two endpoints. A and B are kept in canonical
// order so that both directions of the same cable share one key.
type Connection struct {
	Record
	A      Endpoint `gorm:"embedded;embeddedPrefix:a_" json:"a" yaml:"a"`
	B      Endpoint `gorm:"embedded;embeddedPrefix:b_" json:"b" yaml:"b"`
	Status string   `gorm:"column:status;size:50" json:"status" yaml:"status"`
}

// NewConnection returns a Connection with endpoints in canonical order.
func NewConnection(a, b Endpoint, status string) Connection {
	if b.String() < a.String() {
		a, b = b, a
	}
	return Connection{A: a, B: b, Status: status}
}

func (Connection) TableName() string { return "dcim_cable" }
func (Connection) EntityType() Type  { return TypeConnection }

func (c Connection) Key() (string, error) {
	if _, ok := c.A.ref(); !ok {
		return "", fmt.Errorf("%w: connection endpoint A %q is incomplete", ErrKeyDerivation, c.A.String())
	}
	if _, ok := c.B.ref(); !ok {
		return "", fmt.Errorf("%w: connection endpoint B %q is incomplete", ErrKeyDerivation, c.B.String())
	}
	a, b := c.A.String(), c.B.String()
	if b < a {
		a, b = b, a
	}
	return JoinKey(a, b), nil
}

func (c Connection) Attrs() Attrs {
	return Attrs{"status": c.Status}
}

func (c Connection) Refs() []Ref {
	var refs []Ref
	for _, e := range []Endpoint{c.A, c.B} {
		if r, ok := e.ref(); ok {
			refs = append(refs, r)
		}
	}
	return refs
}

// Models returns a zero value of every entity type in dependency order.
func Models() []Entity {
	return []Entity{
		Building{}, Room{}, Rack{}, Vendor{}, Hardware{}, Cluster{}, VLAN{}, Device{},
		Port{}, VRF{}, Subnet{}, IPAddress{}, Provider{}, Circuit{}, CircuitTermination{}, Connection{},
	}
}

// Model returns the zero value for t.
func Model(t Type) (Entity, bool) {
	for _, m := range Models() {
		if m.EntityType() == t {
			return m, true
		}
	}
	return nil, false
}

// Round6 rounds coordinates to six decimals.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
