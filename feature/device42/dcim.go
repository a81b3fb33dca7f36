package device42

import (
	"math"
	"sort"
	"strings"

	"inventory-sync/core/heuristics"
	"inventory-sync/core/inventory"
	"inventory-sync/core/utils"
)

func (r *run) loadBuildings() {
	for _, rec := range r.records[KindBuildings] {
		t := tags(rec)
		if r.ignored(inventory.TypeBuilding, rec.String("name"), t) {
			continue
		}
		b := inventory.Building{
			Name:         strings.TrimSpace(rec.String("name")),
			Address:      heuristics.Sanitize(rec.String("address")),
			Latitude:     inventory.Round6(rec.Float("latitude")),
			Longitude:    inventory.Round6(rec.Float("longitude")),
			ContactName:  rec.String("contact_name"),
			ContactPhone: rec.String("contact_phone"),
			Status:       r.cfg.Defaults.SiteStatus,
			Tags:         t,
			CustomFields: customFields(rec),
		}
		b.Facility = heuristics.FacilityFromTags(t, r.cfg.FacilityPrepend)
		if r.insert(b, b.Name) {
			r.sites.AddBuilding(b.Name, t)
		}
	}
}

func (r *run) loadRooms() {
	for _, rec := range r.records[KindRooms] {
		t := tags(rec)
		if r.ignored(inventory.TypeRoom, rec.String("name"), t) {
			continue
		}
		r.insert(inventory.Room{
			Building:     rec.String("building"),
			Name:         strings.TrimSpace(rec.String("name")),
			Notes:        rec.String("notes"),
			Tags:         t,
			CustomFields: customFields(rec),
		}, rec.String("name"))
	}
}

func (r *run) loadRacks() {
	for _, rec := range r.records[KindRacks] {
		t := tags(rec)
		if r.ignored(inventory.TypeRack, rec.String("name"), t) {
			continue
		}
		height := rec.Int("size")
		if height <= 0 {
			height = 1
		}
		r.insert(inventory.Rack{
			Building:                 rec.String("building"),
			Room:                     rec.String("room"),
			Name:                     strings.TrimSpace(rec.String("name")),
			Height:                   height,
			NumberingStartFromBottom: rec.Bool("numbering_start_from_bottom"),
			Status:                   r.cfg.Defaults.RackStatus,
			Tags:                     t,
			CustomFields:             customFields(rec),
		}, rec.String("name"))
	}
}

func (r *run) loadVendors() {
	for _, rec := range r.records[KindVendors] {
		r.insert(inventory.Vendor{
			Name:         strings.TrimSpace(rec.String("name")),
			CustomFields: customFields(rec),
		}, rec.String("name"))
	}
}

func (r *run) loadHardware() {
	r.hardwareVendor = make(map[string]string)
	for _, rec := range r.records[KindHardware] {
		name := heuristics.Sanitize(rec.String("name"))
		manufacturer := rec.String("manufacturer")
		if manufacturer == "" {
			r.issue(inventory.UnresolvedReference, inventory.TypeHardware, name, "hardware model has no manufacturer")
			continue
		}
		size := math.Round(rec.Float("size"))
		if size <= 0 {
			size = 1
		}
		depth := rec.String("depth")
		if depth == "" {
			depth = "Half Depth"
		}
		if r.insert(inventory.Hardware{
			Name:         name,
			Vendor:       manufacturer,
			Size:         size,
			Depth:        depth,
			PartNumber:   rec.String("part_no"),
			CustomFields: customFields(rec),
		}, name) {
			r.hardwareVendor[name] = manufacturer
		}
	}
}

type clusterInfo struct {
	members  []string
	hardware string
	os       string
	customer string
	tags     []string
}

// clusterIndex merges the cluster query rows by cluster name.
func (r *run) clusterIndex() map[string]*clusterInfo {
	out := make(map[string]*clusterInfo)
	for _, rec := range r.records[KindClusters] {
		name := heuristics.DeviceName(rec.String("cluster"))
		if name == "" {
			continue
		}
		info, ok := out[name]
		if !ok {
			info = &clusterInfo{}
			out[name] = info
		}
		for _, m := range strings.Split(rec.String("members"), ";") {
			if m = heuristics.DeviceName(m); m != "" && !inventory.StringList(info.members).Contains(m) {
				info.members = append(info.members, m)
			}
		}
		if info.hardware == "" {
			info.hardware = heuristics.Sanitize(rec.String("hardware"))
		}
		if info.os == "" {
			info.os = rec.String("os")
		}
		if info.customer == "" {
			info.customer = rec.String("customer")
		}
		info.tags = append(info.tags, rec.Strings("tags")...)
	}
	return out
}

func memberOf(clusters map[string]*clusterInfo, device string) (string, int) {
	for _, name := range sortedNames(clusters) {
		for i, m := range clusters[name].members {
			if m == device {
				return name, i
			}
		}
	}
	return "", -1
}

func sortedNames(clusters map[string]*clusterInfo) []string {
	names := make([]string, 0, len(clusters))
	for name := range clusters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *run) loadClustersAndDevices() {
	clusters := r.clusterIndex()
	devices := make(map[string]utils.Record, len(r.records[KindDevices]))
	for _, rec := range r.records[KindDevices] {
		devices[heuristics.DeviceName(rec.String("name"))] = rec
	}

	for _, name := range sortedNames(clusters) {
		info := clusters[name]
		rec := devices[name]
		if rec == nil {
			rec = utils.Record{}
		}
		t := inventory.StringList(append(rec.Strings("tags"), info.tags...))
		t = dedupe(t)
		if r.ignored(inventory.TypeCluster, name, t) {
			r.skipDevices[name] = true
			continue
		}

		// The master must be placeable before the cluster exists; otherwise the
		// members load as standalone devices.
		customer := info.customer
		if c := rec.String("customer"); c != "" {
			customer = c
		}
		site, err := r.sites.Resolve(name, customer, rec.String("building"))
		if err != nil {
			r.skipDevices[name] = true
			r.resolverIssue(inventory.TypeCluster, name, err)
			continue
		}
		if !r.insert(inventory.Cluster{
			Name:         name,
			Members:      inventory.StringList(info.members).Sorted(),
			Tags:         t,
			CustomFields: customFields(rec),
		}, name) {
			continue
		}
		hardware := info.hardware
		if hw := rec.String("hw_model"); hw != "" {
			hardware = heuristics.Sanitize(hw)
		}
		master := inventory.Device{
			Name:         name,
			Site:         site,
			Face:         "rear",
			Hardware:     hardware,
			Role:         heuristics.RoleFromTags(t, r.cfg.RolePrepend, r.cfg.Defaults.DeviceRole),
			Status:       heuristics.DeviceStatus(!rec.Has("in_service") || rec.Bool("in_service")),
			Cluster:      name,
			VCPosition:   heuristics.ChassisPosition(name, 0, true),
			Tags:         t,
			CustomFields: customFields(rec),
		}
		r.applyPlatform(&master, info.os)
		r.insert(master, name)
	}

	for _, rec := range r.records[KindDevices] {
		name := heuristics.DeviceName(rec.String("name"))
		if _, isCluster := clusters[name]; isCluster || rec.String("type") == "cluster" {
			// The synthetic master already stands in for this device.
			continue
		}
		t := tags(rec)
		if r.ignored(inventory.TypeDevice, name, t) {
			r.skipDevices[name] = true
			continue
		}
		if !rec.Has("hw_model") {
			r.skipDevices[name] = true
			r.issue(inventory.UnresolvedReference, inventory.TypeDevice, name, "device has no hardware model")
			continue
		}
		building := rec.String("building")
		site, err := r.sites.Resolve(name, rec.String("customer"), building)
		if err != nil {
			r.skipDevices[name] = true
			r.resolverIssue(inventory.TypeDevice, name, err)
			continue
		}

		d := inventory.Device{
			Name:         name,
			Site:         site,
			Face:         "rear",
			Hardware:     heuristics.Sanitize(rec.String("hw_model")),
			Role:         heuristics.RoleFromTags(t, r.cfg.RolePrepend, r.cfg.Defaults.DeviceRole),
			Status:       heuristics.DeviceStatus(rec.Bool("in_service")),
			OSVersion:    heuristics.OSVersion(rec.String("osver")),
			Serial:       rec.String("serial_no"),
			Tags:         t,
			CustomFields: customFields(rec),
		}
		if rec.Int("orientation") == 1 {
			d.Face = "front"
		}
		// Room and rack only apply inside the device's own building.
		if site == building && rec.Has("room") {
			d.Room = rec.String("room")
			if rec.Has("rack") {
				d.Rack = rec.String("rack")
				d.Position = rec.Int("start_at")
			}
		}
		r.applyPlatform(&d, rec.String("os"))

		if host, idx := memberOf(clusters, name); host != "" && r.snap.Has(inventory.TypeDevice, host) {
			d.Cluster = host
			d.VCPosition = heuristics.ChassisPosition(name, idx, false)
		}
		r.insert(d, name)
	}
}

func dedupe(list inventory.StringList) inventory.StringList {
	seen := make(map[string]bool, len(list))
	out := make(inventory.StringList, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out.Sorted()
}

// applyPlatform sets the platform facets unless they contradict the hardware vendor.
func (r *run) applyPlatform(d *inventory.Device, os string) {
	p := heuristics.PlatformFacets(os)
	if p.IsZero() {
		return
	}
	if err := p.CheckVendor(r.hardwareVendor[d.Hardware]); err != nil {
		r.resolverIssue(inventory.TypeDevice, d.Name, err)
		return
	}
	d.Platform = p.AutomationOS
	d.CLIDriver = p.CLIDriver
	d.NativeDriver = p.NativeDriver
}

type vlanRef struct {
	name string
	vid  int
}

func (r *run) vlanInfo() map[string]vlanRef {
	out := make(map[string]vlanRef)
	for _, rec := range r.records[KindVLANInfo] {
		out[rec.String("vlan_pk")] = vlanRef{name: strings.TrimSpace(rec.String("name")), vid: rec.Int("vid")}
	}
	return out
}

func (r *run) loadPorts() {
	info := r.vlanInfo()
	cfs := customFieldIndex(r.records[KindPortCustomFields], func(row utils.Record) string {
		return inventory.JoinKey(row.String("device_name"), row.String("port_name"))
	})

	for _, rec := range r.records[KindPorts] {
		device := heuristics.DeviceName(rec.String("device_name"))
		name := strings.TrimSpace(rec.String("port_name"))
		if device == "" || name == "" || r.skipDevices[device] {
			continue
		}
		t := tags(rec)
		if r.ignored(inventory.TypePort, name, t) {
			continue
		}
		e, ok := r.snap.Get(inventory.TypeDevice, device)
		if !ok {
			r.issue(inventory.UnresolvedReference, inventory.TypePort, inventory.JoinKey(device, name), "port references unknown device")
			continue
		}
		site := e.(inventory.Device).Site

		p := inventory.Port{
			Device:      device,
			Name:        name,
			Enabled:     rec.Bool("up_admin"),
			MTU:         heuristics.MTU(rec.Int("mtu")),
			Description: heuristics.Sanitize(rec.String("description")),
			MACAddress:  heuristics.MACAddress(rec.String("hwaddress")),
			Type: heuristics.InterfaceType(heuristics.PortFacts{
				Name:           name,
				PortType:       rec.String("port_type"),
				DiscoveredType: rec.String("discovered_type"),
				Speed:          rec.String("port_speed"),
				Up:             rec.Bool("up"),
			}),
			Mode:         "access",
			Tags:         t,
			CustomFields: cfs[inventory.JoinKey(device, name)],
		}

		seen := make(map[string]bool)
		for _, pk := range rec.Strings("vlan_pks") {
			ref, ok := info[pk]
			if !ok || ref.vid == 0 {
				continue
			}
			key, err := heuristics.ResolveVLAN(r.snap, ref.vid, ref.name, site)
			if err != nil {
				r.resolverIssue(inventory.TypePort, inventory.JoinKey(device, name), err)
			}
			if key != "" && !seen[key] {
				seen[key] = true
				p.VLANs = append(p.VLANs, key)
			}
		}
		p.VLANs = p.VLANs.Sorted()
		if len(p.VLANs) > 1 {
			p.Mode = "tagged"
		}
		r.insert(p, inventory.JoinKey(device, name))
	}
}
