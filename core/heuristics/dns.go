package heuristics

import (
	"context"
	"fmt"
	"net/netip"
	"regexp"

	"inventory-sync/core/inventory"
)

// ManagementInterface is the name of the port created when a device has none.
const ManagementInterface = "Management"

const managementDescription = "Interface added by script for Management of device using DNS A record."

var (
	memberNamePattern = regexp.MustCompile(`\s-\s\w+\s?\d+`)
	apSerialPattern   = regexp.MustCompile(`AP[A-F0-9]{4}\.[A-F0-9]{4}.[A-F0-9]{4}`)
	fqdnPattern       = regexp.MustCompile(`[a-zA-Z0-9\.\/\?\:\-_=#]+\.[a-zA-Z]{2,6}`)

	managementNames = []string{"mgmt0", "management", "management0", "Management"}
)

// HostResolver looks up the addresses of a host. *net.Resolver satisfies it.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// PrimaryOutcome describes what AssignPrimary did.
type PrimaryOutcome string

const (
	PrimarySkipped  PrimaryOutcome = "skipped"
	PrimaryMarked   PrimaryOutcome = "marked"
	PrimaryAttached PrimaryOutcome = "attached"
	PrimaryCreated  PrimaryOutcome = "created"
)

// PrimaryIPs resolves device primary addresses through DNS.
type PrimaryIPs struct {
	resolver HostResolver
}

// NewPrimaryIPs returns a resolver backed by r.
func NewPrimaryIPs(r HostResolver) *PrimaryIPs {
	return &PrimaryIPs{resolver: r}
}

// SkipDNS reports whether a device name is a cluster member or access point serial,
// which never carry their own DNS record.
func SkipDNS(name string) bool {
	return memberNamePattern.MatchString(name) || apSerialPattern.MatchString(name)
}

// FQDN extracts the first fully qualified name from a device name.
func FQDN(name string) string {
	return fqdnPattern.FindString(name)
}

// AssignPrimary resolves the device name and records the result as the primary
// IPAddress of the device in s, creating the address or a management port when needed.
func (p *PrimaryIPs) AssignPrimary(ctx context.Context, s *inventory.Snapshot, device string) (PrimaryOutcome, error) {
	if SkipDNS(device) {
		return PrimarySkipped, nil
	}
	fqdn := FQDN(device)
	if fqdn == "" {
		return PrimarySkipped, nil
	}
	addrs, err := p.resolver.LookupHost(ctx, fqdn)
	if err != nil || len(addrs) == 0 {
		return PrimarySkipped, fmt.Errorf("%w: %s has no A record", ErrUnresolved, fqdn)
	}
	addr, err := netip.ParseAddr(addrs[0])
	if err != nil {
		return PrimarySkipped, fmt.Errorf("%w: %s resolved to invalid address %q", ErrUnresolved, fqdn, addrs[0])
	}
	addr = addr.Unmap()

	if ip, ok := FindIPAddress(s, addr); ok {
		switch {
		case ip.Device == device:
			ip.Primary = true
			return PrimaryMarked, s.Replace(ip)
		case ip.Device != "":
			return PrimarySkipped, fmt.Errorf("%w: %s resolves to %s which belongs to %s",
				ErrAmbiguous, device, ip.Address, ip.Device)
		}
		prefix, _ := netip.ParsePrefix(ip.Address)
		intf, err := managementPort(s, device, prefix.Masked())
		if err != nil {
			return PrimarySkipped, err
		}
		ip.Device, ip.Interface, ip.Primary = device, intf, true
		return PrimaryAttached, s.Replace(ip)
	}

	subnet, ok := ContainingSubnet(s, addr)
	if !ok {
		return PrimarySkipped, fmt.Errorf("%w: no subnet contains %s for %s", ErrUnresolved, addr, device)
	}
	prefix := netip.PrefixFrom(addr, subnet.MaskBits)
	intf, err := managementPort(s, device, prefix.Masked())
	if err != nil {
		return PrimarySkipped, err
	}
	_, err = s.Insert(inventory.IPAddress{
		VRF:       subnet.VRF,
		Address:   prefix.String(),
		Status:    StatusActive,
		Device:    device,
		Interface: intf,
		Primary:   true,
	})
	if err != nil {
		return PrimarySkipped, err
	}
	return PrimaryCreated, nil
}

// FindIPAddress looks for addr with prefix lengths from the full length downwards,
// in every VRF and then in the global table.
func FindIPAddress(s *inventory.Snapshot, addr netip.Addr) (inventory.IPAddress, bool) {
	vrfs := append(s.Keys(inventory.TypeVRF), "")
	for bits := addr.BitLen(); bits > 0; bits-- {
		address := netip.PrefixFrom(addr, bits).String()
		for _, vrf := range vrfs {
			if e, ok := s.Get(inventory.TypeIPAddress, inventory.IPAddressKey(vrf, address)); ok {
				return e.(inventory.IPAddress), true
			}
		}
	}
	return inventory.IPAddress{}, false
}

// ContainingSubnet returns the longest subnet that contains addr.
func ContainingSubnet(s *inventory.Snapshot, addr netip.Addr) (inventory.Subnet, bool) {
	var (
		best  inventory.Subnet
		found bool
	)
	for _, e := range s.All(inventory.TypeSubnet) {
		sn := e.(inventory.Subnet)
		prefix, err := netip.ParsePrefix(sn.Prefix())
		if err != nil || !prefix.Contains(addr) {
			continue
		}
		if !found || sn.MaskBits > best.MaskBits {
			best, found = sn, true
		}
	}
	return best, found
}

// managementPort picks the port a DNS derived address belongs on: a port already
// holding an address in the same subnet, then a well known management port, otherwise
// a synthetic management port is added to s.
func managementPort(s *inventory.Snapshot, device string, subnet netip.Prefix) (string, error) {
	for _, e := range s.All(inventory.TypeIPAddress) {
		ip := e.(inventory.IPAddress)
		if ip.Device != device || ip.Interface == "" {
			continue
		}
		if p, err := netip.ParsePrefix(ip.Address); err == nil && subnet.Contains(p.Addr()) {
			return ip.Interface, nil
		}
	}
	for _, name := range managementNames {
		if s.Has(inventory.TypePort, inventory.JoinKey(device, name)) {
			return name, nil
		}
	}
	_, err := s.Insert(inventory.Port{
		Device:      device,
		Name:        ManagementInterface,
		Enabled:     true,
		MTU:         defaultMTU,
		Description: managementDescription,
		Type:        InterfaceOther,
		Mode:        "access",
		MgmtOnly:    true,
	})
	if err != nil {
		return "", err
	}
	return ManagementInterface, nil
}
