package device42

import (
	"fmt"
	"strings"

	"inventory-sync/core/heuristics"
	"inventory-sync/core/inventory"
	"inventory-sync/core/utils"

	"go.uber.org/zap"
)

func (r *run) loadVRFs() {
	for _, rec := range r.records[KindVRFGroups] {
		t := tags(rec)
		if r.ignored(inventory.TypeVRF, rec.String("name"), t) {
			continue
		}
		r.insert(inventory.VRF{
			Name:         strings.TrimSpace(rec.String("name")),
			Description:  heuristics.Sanitize(rec.String("description")),
			Tags:         t,
			CustomFields: customFields(rec),
		}, rec.String("name"))
	}
}

// vlanSite places a VLAN at the building of the devices carrying it, falling back to the
// facility of their customer. VLANs seen nowhere stay siteless.
func (r *run) vlanSite(rec utils.Record) string {
	if b := rec.String("building"); b != "" && r.snap.Has(inventory.TypeBuilding, b) {
		return b
	}
	if r.cfg.CustomerIsFacility {
		if site, ok := r.sites.Facility(rec.String("customer")); ok {
			return site
		}
	}
	return ""
}

func (r *run) loadVLANs() {
	cfs := customFieldIndex(r.records[KindVLANCustomFields], func(row utils.Record) string {
		return row.String("vlan_pk")
	})
	seen := make(map[string]bool)
	for _, rec := range r.records[KindVLANs] {
		site := r.vlanSite(rec)
		// One row per port carrying the VLAN, so the same pk repeats per site.
		pk := inventory.JoinKey(rec.String("vlan_pk"), site)
		if seen[pk] {
			continue
		}
		seen[pk] = true

		v := inventory.VLAN{
			Site:         site,
			VID:          rec.Int("vid"),
			Name:         strings.TrimSpace(rec.String("vlan_name")),
			Description:  heuristics.Sanitize(rec.String("description")),
			Status:       heuristics.StatusActive,
			CustomFields: cfs[rec.String("vlan_pk")],
		}
		r.insert(v, fmt.Sprintf("%s vlan %d %q", heuristics.SiteLabel(site), v.VID, v.Name))
	}
}

func prefixKey(network string, maskBits int) string {
	return fmt.Sprintf("%s/%d", network, maskBits)
}

func (r *run) loadSubnets() {
	cfs := customFieldIndex(r.records[KindSubnetCustomFields], func(row utils.Record) string {
		return prefixKey(row.String("network"), row.Int("mask_bits"))
	})
	for _, rec := range r.records[KindSubnets] {
		t := tags(rec)
		network := strings.TrimSpace(rec.String("network"))
		if r.ignored(inventory.TypeSubnet, network, t) {
			continue
		}
		s := inventory.Subnet{
			VRF:          strings.TrimSpace(rec.String("vrf")),
			Network:      network,
			MaskBits:     rec.Int("mask_bits"),
			Description:  heuristics.Sanitize(rec.String("name")),
			Status:       heuristics.StatusActive,
			Tags:         t,
			CustomFields: cfs[prefixKey(network, rec.Int("mask_bits"))],
		}
		if s.VRF != "" && !r.snap.Has(inventory.TypeVRF, s.VRF) {
			r.issue(inventory.UnresolvedReference, inventory.TypeSubnet, s.Prefix(), fmt.Sprintf("unknown vrf %q", s.VRF))
			continue
		}
		r.insert(s, s.Prefix())
	}
}

func (r *run) loadIPAddresses() {
	cfs := customFieldIndex(r.records[KindIPCustomFields], func(row utils.Record) string {
		return prefixKey(row.String("ip_address"), row.Int("mask_bits"))
	})
	for _, rec := range r.records[KindIPAddresses] {
		t := tags(rec)
		ip := strings.TrimSpace(rec.String("ip_address"))
		if ip == "" || r.ignored(inventory.TypeIPAddress, ip, t) {
			continue
		}
		address := prefixKey(ip, rec.Int("netmask"))
		a := inventory.IPAddress{
			VRF:          strings.TrimSpace(rec.String("vrf")),
			Address:      address,
			Status:       heuristics.IPStatus(rec.Bool("available")),
			Description:  heuristics.Sanitize(rec.String("label")),
			Tags:         t,
			CustomFields: cfs[address],
		}
		if a.VRF != "" && !r.snap.Has(inventory.TypeVRF, a.VRF) {
			r.issue(inventory.UnresolvedReference, inventory.TypeIPAddress, address, fmt.Sprintf("unknown vrf %q", a.VRF))
			continue
		}

		// Assignments to devices outside the snapshot are dropped, the address is kept.
		device := heuristics.DeviceName(rec.String("device"))
		if device != "" && r.snap.Has(inventory.TypeDevice, device) {
			a.Device = device
			port := strings.TrimSpace(rec.String("port_name"))
			if port != "" && r.snap.Has(inventory.TypePort, inventory.JoinKey(device, port)) {
				a.Interface = port
			}
		}
		r.insert(a, address)
	}
}

func (r *run) assignPrimaryIPs() {
	if r.resolver == nil {
		r.logger.Warn("DNS lookups enabled but no resolver configured")
		return
	}
	primary := heuristics.NewPrimaryIPs(r.resolver)
	outcomes := make(map[heuristics.PrimaryOutcome]int)
	for _, device := range r.snap.Keys(inventory.TypeDevice) {
		if err := r.ctx.Err(); err != nil {
			r.logger.Warn("DNS pass interrupted", zap.Error(err))
			return
		}
		out, err := primary.AssignPrimary(r.ctx, r.snap, device)
		if err != nil {
			r.resolverIssue(inventory.TypeIPAddress, device, err)
		}
		outcomes[out]++
	}
	r.logger.Info("Primary IP addresses resolved through DNS",
		zap.Int("marked", outcomes[heuristics.PrimaryMarked]),
		zap.Int("attached", outcomes[heuristics.PrimaryAttached]),
		zap.Int("created", outcomes[heuristics.PrimaryCreated]),
		zap.Int("skipped", outcomes[heuristics.PrimarySkipped]))
}
